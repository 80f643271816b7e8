package excel

import "retcheck/domain/returns"

// ReaderConfig selects which column, and for XLSX which sheet, holds returns
type ReaderConfig struct {
	Column string `json:"column"`
	Sheet  string `json:"sheet"` // empty means the first sheet
}

// DefaultReaderConfig reads the "return" column from the first sheet
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{Column: returns.DefaultColumn}
}
