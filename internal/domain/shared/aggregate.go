package shared

// BaseAggregateRoot extends BaseEntity with a version counter persisted for
// optimistic locking on mutable aggregates.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// IncrementVersion advances the version for the next persisted write
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}
