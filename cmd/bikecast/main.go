// Command bikecast runs the bicycle-rental-type workflow end to end:
// load the CSV, report class balance, split train/test, fit the feature
// pipeline and the boosting classifier, evaluate AUC/F1 and score two
// hand-written example records.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bikecast/internal/boosting"
	"bikecast/internal/cfg"
	"bikecast/internal/dataset"
	"bikecast/internal/predict"
	bcerrors "bikecast/pkg/errors"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("workflow failed")
		fmt.Println("Ошибка выполнения:")
		fmt.Printf("%+v\n", err)
	}

	fmt.Println("Нажмите Enter для выхода...")
	bufio.NewReader(os.Stdin).ReadString('\n')
}

func run() (err error) {
	defer bcerrors.Recover(&err, "main.run")

	settings, err := cfg.Load()
	if err != nil {
		return err
	}
	setupLogging(settings.LogLevel)

	fmt.Printf("Загрузка данных из %s...\n", settings.DataPath)
	data, err := dataset.Load(settings.DataPath, settings.Delimiter, settings.HasHeader)
	if err != nil {
		return err
	}
	fmt.Printf("Загружено записей: %d\n", len(data))

	balance := dataset.ReportBalance(data)
	fmt.Printf("Краткосрочная аренда (false): %d\n", balance.CountFalse)
	fmt.Printf("Долгосрочная аренда (true): %d\n", balance.CountTrue)

	fmt.Println("Разделение на обучающую и тестовую выборки...")
	train, test, err := dataset.Split(data, settings.TestFraction, settings.Seed)
	if err != nil {
		return err
	}
	fmt.Printf("Обучающая выборка: %d, тестовая выборка: %d\n", len(train), len(test))

	fmt.Println("Обучение модели...")
	model, err := predict.Train(train, boosting.Params{
		NumIterations: settings.NumIterations,
		LearningRate:  settings.LearningRate,
		MaxDepth:      settings.MaxDepth,
		MinLeafSize:   settings.MinLeafSize,
		Lambda:        settings.Lambda,
	})
	if err != nil {
		return err
	}

	ev, err := model.Evaluate(test)
	if err != nil {
		return err
	}
	fmt.Printf("AUC: %.2f\n", ev.AUC)
	fmt.Printf("F1: %.2f\n", ev.F1)

	if settings.ModelSavePath != "" {
		if err := model.Classifier.Model.SaveToFile(settings.ModelSavePath); err != nil {
			return err
		}
		fmt.Printf("Модель сохранена в %s\n", settings.ModelSavePath)
	}
	if settings.ROCPlotPath != "" {
		curve, err := model.ROC(test)
		if err != nil {
			return err
		}
		if err := curve.SavePNG(settings.ROCPlotPath); err != nil {
			return err
		}
		fmt.Printf("ROC-кривая сохранена в %s\n", settings.ROCPlotPath)
	}

	return runExamples(model)
}

// runExamples scores the two reference records: a warm clear June midday
// and a freezing stormy December afternoon.
func runExamples(model *predict.FittedModel) error {
	examples := []struct {
		caption string
		record  dataset.RentalRecord
	}{
		{
			caption: "Прогноз для ясного июньского полдня (погода=1, температура=18.0)",
			record: dataset.RentalRecord{
				Season: 1, Month: 6, Hour: 12, Holiday: 0, Weekday: 3, WorkingDay: 1,
				WeatherCondition: 1, Temperature: 18.0, Humidity: 75.0, Windspeed: 8.0,
			},
		},
		{
			caption: "Прогноз для морозного декабрьского вечера (погода=4, температура=-2.0)",
			record: dataset.RentalRecord{
				Season: 4, Month: 12, Hour: 16, Holiday: 0, Weekday: 5, WorkingDay: 1,
				WeatherCondition: 4, Temperature: -2.0, Humidity: 90.0, Windspeed: 20.0,
			},
		},
	}

	for _, ex := range examples {
		p, err := model.PredictRecord(ex.record)
		if err != nil {
			return err
		}
		kind := "краткосрочная аренда"
		if p.WillRent {
			kind = "долгосрочная аренда"
		}
		fmt.Println(ex.caption)
		fmt.Printf("  Предсказание: %s (вероятность %.2f)\n", kind, p.Probability)
	}
	return nil
}

func setupLogging(logLevel string) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	bcerrors.SetWarningHandler(func(w error) {
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			log.Warn().EmbedObject(obj).Msg(w.Error())
			return
		}
		log.Warn().Msg(w.Error())
	})
}
