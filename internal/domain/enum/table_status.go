package enum

// TableStatus is the occupancy state of a restaurant table.
type TableStatus string

const (
	TableStatusAvailable TableStatus = "AV"
	TableStatusOccupied  TableStatus = "OC"
	TableStatusReserved  TableStatus = "RE"
)

func (s TableStatus) IsValid() bool {
	return s == TableStatusAvailable || s == TableStatusOccupied || s == TableStatusReserved
}
