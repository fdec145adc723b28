package sheetio

import (
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/stretchr/testify/mock"
)

// MockSheetReader is a mock implementation of SheetReader for testing.
type MockSheetReader struct {
	mock.Mock
}

var _ contract.SheetReader = &MockSheetReader{} // Compile-time check

// ReadRows implements the SheetReader interface.
func (m *MockSheetReader) ReadRows(path string, sheet string) ([][]string, error) {
	args := m.Called(path, sheet)
	rows, _ := args.Get(0).([][]string)
	return rows, args.Error(1)
}

// SheetNames implements the SheetReader interface.
func (m *MockSheetReader) SheetNames(path string) ([]string, error) {
	args := m.Called(path)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}
