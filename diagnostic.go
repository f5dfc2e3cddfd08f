package diagram

import (
	"fmt"

	"go.uber.org/zap"
)

// Severity grades a diagnostic.
type Severity int

// Unrecognized instruction types are warnings; everything else that keeps
// an instruction off the canvas is an error.
const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic describes one instruction that was left out of a render. A
// canvas-level problem has Index -1.
type Diagnostic struct {
	Index    int
	Type     Kind
	ID       string
	Severity Severity
	Message  string
	Err      error
}

func (d Diagnostic) Error() string {
	if d.Index < 0 {
		return fmt.Sprintf("canvas: %s: %v", d.Message, d.Err)
	}
	return fmt.Sprintf("instruction %d (%s): %s: %v", d.Index, d.Type, d.Message, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

type stage int

const (
	stageValidate stage = iota
	stageConvert
)

// stageError records where in the pipeline an instruction failed.
type stageError struct {
	stage stage
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func diagnose(o outcome, inst Instruction) Diagnostic {
	d := Diagnostic{
		Index:    o.index,
		Severity: SeverityError,
		Err:      o.err,
		Message:  "invalid instruction",
	}
	if se, ok := o.err.(*stageError); ok {
		d.Err = se.err
		if se.stage == stageConvert {
			d.Message = "failed to render instruction"
		}
	}
	if o.warning {
		d.Severity = SeverityWarning
		d.Message = "unrecognized instruction type"
	}
	if inst != nil {
		d.Type = inst.Kind()
		d.ID = inst.style().ID
	}
	return d
}

func report(log *zap.Logger, d Diagnostic, inst Instruction) {
	fields := []zap.Field{
		zap.Int("index", d.Index),
		zap.String("type", string(d.Type)),
		zap.Error(d.Err),
	}
	if d.ID != "" {
		fields = append(fields, zap.String("id", d.ID))
	}
	if inst != nil {
		fields = append(fields, zap.String("instruction", fmt.Sprintf("%+v", inst)))
	}
	if d.Severity == SeverityWarning {
		log.Warn(d.Message, fields...)
		return
	}
	log.Error(d.Message, fields...)
}
