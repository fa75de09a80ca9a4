package models

// AttributeDefinition is a named variant axis. It either lists named values or
// describes a numeric range, never both.
type AttributeDefinition struct {
	Name      string           `gorm:"column:attribute_name;primaryKey;size:140" json:"attribute_name"`
	Numeric   bool             `gorm:"column:numeric_values" json:"numeric_values"`
	From      float64          `gorm:"column:from_range" json:"from_range"`
	To        float64          `gorm:"column:to_range" json:"to_range"`
	Increment float64          `gorm:"column:increment" json:"increment"`
	Values    []AttributeValue `gorm:"foreignKey:Parent;references:Name" json:"values,omitempty"`
}

// TableName overrides the table name.
func (AttributeDefinition) TableName() string { return "attribute_definitions" }

// AttributeValue is one named value of a non-numeric attribute.
type AttributeValue struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Parent   string `gorm:"column:parent;size:140;index" json:"-"`
	Position int    `gorm:"column:idx" json:"idx"`
	Value    string `gorm:"column:attribute_value;size:140" json:"attribute_value"`
	Abbr     string `gorm:"column:abbr;size:140" json:"abbr"`
}

// TableName overrides the table name.
func (AttributeValue) TableName() string { return "attribute_values" }

// Lookup returns the stored value equal to raw, or else the first stored value
// whose abbreviation equals raw. Matching is case-sensitive.
func (d *AttributeDefinition) Lookup(raw string) (string, bool) {
	for _, v := range d.Values {
		if v.Value == raw {
			return v.Value, true
		}
	}
	for _, v := range d.Values {
		if v.Abbr == raw {
			return v.Value, true
		}
	}
	return "", false
}
