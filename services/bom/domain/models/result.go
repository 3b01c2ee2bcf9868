package models

// BomSuggestionResult is the response contract for one realization run.
// Invariant: every item in OriginalItems is either covered by at least one
// suggestion's line items or listed in UnmatchedItems, never both and never
// neither. An item is unmatched iff no provider returned any offer for it.
type BomSuggestionResult struct {
	OriginalItems  []BomItem     `json:"original_items"`
	UnmatchedItems []BomItem     `json:"unmatched_items"`
	Suggestions    []RealizedBom `json:"suggestions"`
	ColumnMapping  ColumnMapping `json:"column_mapping"`
}
