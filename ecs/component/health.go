package component

// HealthState is alive or dead. Movement and collision systems must ignore a
// Dead actor; that contract is documented here, not enforced here.
type HealthState string

const (
	HealthAlive HealthState = "alive"
	HealthDead  HealthState = "dead"
)

type Health struct {
	State HealthState
	Max   int
	Hits  int
}

var HealthComponent = NewComponent[Health]()
