package schemas

// RelationUpdateSchema struct
type RelationUpdateSchema struct {
	Status string
}
