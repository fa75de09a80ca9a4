package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"catalog-sync/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "mismatch", "missing"
}

// CheckSchema verifies the database schema using GORM models as the source of truth.
// Column types are only compared when the model declares an explicit type.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}
	cache := &sync.Map{}

	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		actualCols, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}
		if len(actualCols) == 0 {
			tbl.Status = "missing"
			report.Matched = false
			report.Tables[s.Table] = tbl
			continue
		}

		actual := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = col
		}

		for _, field := range s.Fields {
			if field.DBName == "" {
				continue
			}
			col, ok := actual[strings.ToLower(field.DBName)]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, field.DBName)
				tbl.Status = "error"
				report.Matched = false
				continue
			}

			expType := strings.ToLower(field.TagSettings["TYPE"])
			if expType != "" && !strings.Contains(col.Type, expType) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", field.DBName, expType, col.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}
		sort.Strings(tbl.MissingColumns)
		report.Tables[s.Table] = tbl
	}

	return report, nil
}
