package domain

import (
	"errors"
	"fmt"
)

// Ошибки этапов загрузки ленты. Все они терминальны: частичный результат
// не возвращается.
var (
	ErrInit       = errors.New("unable to initialize request")
	ErrFetch      = errors.New("fetch failed")
	ErrParse      = errors.New("unable to parse document")
	ErrNoChannel  = errors.New("no channel element found")
	ErrDateFormat = errors.New("invalid pubDate format")
)

// Stage - этап конвейера, на котором произошла ошибка.
type Stage string

const (
	StageInit  Stage = "init"
	StageFetch Stage = "fetch"
	StageParse Stage = "parse"
	StageWalk  Stage = "walk"
	StageBuild Stage = "build"
)

// StageError связывает ошибку с этапом и сигнальной ошибкой Kind,
// чтобы вызывающий код мог различать их через errors.Is.
type StageError struct {
	Stage Stage
	Kind  error
	URL   string
	Err   error
}

// NewStageError создает ошибку этапа. err может быть nil, если причина
// полностью описывается kind.
func NewStageError(stage Stage, kind error, url string, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, URL: url, Err: err}
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s stage: %v", e.Stage, e.Kind)
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StageOf возвращает этап, на котором произошла ошибка, если она была
// создана через NewStageError.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
