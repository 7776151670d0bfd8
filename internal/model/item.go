package model

import "errors"

// Item data types selectable when defining a template.
const (
	ItemTypeText   = "text"
	ItemTypeNumber = "number"
	ItemTypeDate   = "date"
	ItemTypeSelect = "select"
)

// Item is one typed input field of a template. The ID is the key into every
// response's value map for that template, so it must stay stable once a
// request has snapshotted the item list.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"dataType"`
}

// ValidateItems checks an item list used by templates and request snapshots.
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return errors.New("at least one item is required")
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" {
			return errors.New("item ID is required")
		}
		if item.Name == "" {
			return errors.New("item name is required")
		}
		if seen[item.ID] {
			return errors.New("item IDs must be unique")
		}
		seen[item.ID] = true
		switch item.DataType {
		case ItemTypeText, ItemTypeNumber, ItemTypeDate, ItemTypeSelect:
		default:
			return errors.New("unknown item data type: " + item.DataType)
		}
	}
	return nil
}
