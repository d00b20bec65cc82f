package compare

// Category identifies one kind of cross-temperature spectral change.
type Category string

const (
	CategoryAppearing    Category = "appearing"
	CategoryDisappearing Category = "disappearing"
	CategoryGrowing      Category = "growing"
	CategoryDiminishing  Category = "diminishing"
	CategoryShifting     Category = "shifting"
	CategoryStable       Category = "stable"
)

// Categories lists all change categories in report order.
func Categories() []Category {
	return []Category{
		CategoryAppearing,
		CategoryDisappearing,
		CategoryGrowing,
		CategoryDiminishing,
		CategoryShifting,
		CategoryStable,
	}
}

// ChangeRecord is one detected change between two adjacent temperatures.
// Records are pure derived facts and are never mutated after emission. The
// populated fields depend on the category:
//
//   - appearing/disappearing: Wavenumber, Shoulder, the temperature pair, and
//     (appearing only) Intensity
//   - growing/diminishing: Wavenumber, ChangePercent, PrevIntensity,
//     CurrIntensity, Shoulder
//   - shifting: FromWavenumber, ToWavenumber, Shift
type ChangeRecord struct {
	Category       Category
	Wavenumber     float64
	FromWavenumber float64
	ToWavenumber   float64
	Shift          float64
	FromTemp       float64
	ToTemp         float64
	Intensity      float64
	PrevIntensity  float64
	CurrIntensity  float64
	ChangePercent  float64
	Shoulder       bool
	Phase          string
}

// ChangeSet groups emitted records per category, preserving emission order.
// The caller owns it for the lifetime of one analysis run. Stable exists for
// completeness but is never populated: matched pairs inside the ±30%
// intensity band simply produce no record.
type ChangeSet struct {
	Appearing    []ChangeRecord
	Disappearing []ChangeRecord
	Growing      []ChangeRecord
	Diminishing  []ChangeRecord
	Shifting     []ChangeRecord
	Stable       []ChangeRecord
}

// ByCategory returns the record slice for the given category.
func (cs *ChangeSet) ByCategory(c Category) []ChangeRecord {
	switch c {
	case CategoryAppearing:
		return cs.Appearing
	case CategoryDisappearing:
		return cs.Disappearing
	case CategoryGrowing:
		return cs.Growing
	case CategoryDiminishing:
		return cs.Diminishing
	case CategoryShifting:
		return cs.Shifting
	case CategoryStable:
		return cs.Stable
	default:
		return nil
	}
}

// Total returns the number of records across all categories.
func (cs *ChangeSet) Total() int {
	n := 0
	for _, c := range Categories() {
		n += len(cs.ByCategory(c))
	}
	return n
}
