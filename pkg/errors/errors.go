// Package errors provides structured error handling for the bikecast pipeline.
// Error constructors attach stack traces via cockroachdb/errors so the top-level
// boundary in cmd/bikecast can print full failure context.
package errors

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var (
	warningMu      sync.Mutex
	warningHandler func(w error)
)

// SetWarningHandler installs the process-wide warning handler.
// Warnings are non-fatal conditions such as a missing label class.
func SetWarningHandler(handler func(w error)) {
	warningMu.Lock()
	defer warningMu.Unlock()
	warningHandler = handler
}

// Warn routes a warning through the installed handler. Without a handler the
// warning is dropped; main installs a zerolog-backed handler at startup.
func Warn(w error) {
	warningMu.Lock()
	defer warningMu.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// NotFittedError is returned when Transform or Predict is called on an
// estimator whose Fit has not completed.
type NotFittedError struct {
	EstimatorName string
	Method        string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("bikecast: %s: estimator is not fitted yet, call Fit() before %s()", e.EstimatorName, e.Method)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("estimator", e.EstimatorName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(estimator, method string) error {
	return errors.WithStack(&NotFittedError{EstimatorName: estimator, Method: method})
}

// DimensionError reports a mismatch between an expected and an actual
// dimension. Axis 0 is rows, axis 1 is columns.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("bikecast: %s: dimension mismatch on axis %d (%s): expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValueError reports an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bikecast: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError wraps a failure inside a model operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bikecast: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("bikecast: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// SchemaError reports a data file that does not match the expected layout.
type SchemaError struct {
	Path    string
	Line    int
	Message string
}

func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("bikecast: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("bikecast: %s: %s", e.Path, e.Message)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("line", e.Line).
		Str("message", e.Message).
		Str("type", "SchemaError")
}

// NewSchemaError creates a SchemaError with a stack trace.
func NewSchemaError(path string, line int, message string) error {
	return errors.WithStack(&SchemaError{Path: path, Line: line, Message: message})
}

// UndefinedMetricWarning signals a metric that is ill-defined for the given
// inputs, for example AUC on a single-class test set.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and set to %g due to %s", w.Metric, w.Result, w.Condition)
}

// NewUndefinedMetricWarning creates an UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ClassImbalanceWarning signals that one of the label classes is absent from
// the loaded dataset. Training continues but is unlikely to be meaningful.
type ClassImbalanceWarning struct {
	Label string
	Count int
}

func (w *ClassImbalanceWarning) Error() string {
	return fmt.Sprintf("label class %q has %d records; training data should contain both classes", w.Label, w.Count)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (w *ClassImbalanceWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Str("label", w.Label).
		Int("count", w.Count).
		Str("type", "ClassImbalanceWarning")
}

// NewClassImbalanceWarning creates a ClassImbalanceWarning.
func NewClassImbalanceWarning(label string, count int) *ClassImbalanceWarning {
	return &ClassImbalanceWarning{Label: label, Count: count}
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in the chain matching target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message, preserving the chain.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// ErrEmptyData is returned when an operation receives no rows.
var ErrEmptyData = New("empty data")
