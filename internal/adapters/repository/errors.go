package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for dataset errors.
var (
	ErrDataLoad      = errors.New("dataset load failed")
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedCell = errors.New("malformed cell")
	ErrAlreadyLoaded = errors.New("dataset already loaded")
)

// DataLoadError reports why a dataset source could not be turned into the
// canonical record set. It matches ErrDataLoad with errors.Is.
type DataLoadError struct {
	Source string
	Row    int // 1-based data row, 0 when not row specific
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("load %s: row %d column %s: %v", e.Source, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %s: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Is makes every DataLoadError match ErrDataLoad.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }
