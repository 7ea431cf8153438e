package enum

// PreparedIn tells which station prepares a menu category.
type PreparedIn string

const (
	PreparedInKitchen PreparedIn = "KITCHEN"
	PreparedInBar     PreparedIn = "BAR"
	PreparedInBoth    PreparedIn = "BOTH"
)

func (p PreparedIn) IsValid() bool {
	return p == PreparedInKitchen || p == PreparedInBar || p == PreparedInBoth
}
