package domain

import "fmt"

// OwnerKind is an entity that carries many-to-many assignments.
type OwnerKind string

const (
	OwnerProyecto     OwnerKind = "proyecto"
	OwnerCapacitacion OwnerKind = "capacitacion"
)

// RelationKind is the kind of entity linked to an owner.
type RelationKind string

const (
	RelationBeneficiarios RelationKind = "beneficiarios"
	RelationSectores      RelationKind = "sectores"
)

// RelationKinds lists every relation in the order reconciliation visits them.
var RelationKinds = []RelationKind{RelationBeneficiarios, RelationSectores}

func (k RelationKind) Valid() bool {
	return k == RelationBeneficiarios || k == RelationSectores
}

// Assignment is one (owner, related) pair. A pair either exists or it does not.
type Assignment struct {
	Owner     OwnerKind
	OwnerID   int64
	Relation  RelationKind
	RelatedID int64
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s:%d/%s:%d", a.Owner, a.OwnerID, a.Relation, a.RelatedID)
}

// IDColumn is the column carrying the related id in linked-row results.
func (k RelationKind) IDColumn() string {
	if k == RelationSectores {
		return "id_sector"
	}
	return "id_beneficiario"
}

func (o OwnerKind) Valid() bool {
	return o == OwnerProyecto || o == OwnerCapacitacion
}
