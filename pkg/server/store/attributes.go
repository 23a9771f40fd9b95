package store

import "github.com/doodlesbykumbi/hydra-in-go/pkg/model"

// AttributesStore abstracts resource attribute and attribute data storage
type AttributesStore interface {
	// GetAttr returns an attribute definition
	GetAttr(id int64) (*model.Attr, error)

	// AddResourceAttr attaches an attribute to a project or network
	AddResourceAttr(ra *model.ResourceAttr) error

	// SetResourceScenario inserts the value of a resource attribute, or
	// replaces the dataset of the existing one for the same scenario
	SetResourceScenario(rs *model.ResourceScenario) error

	// ProjectAttributeData returns the scenario-less data of a project's
	// attributes with their datasets
	ProjectAttributeData(projectID int64) ([]model.ResourceScenario, error)
}
