package hydra

import (
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
)

// ResourceAttrInput attaches an attribute. A negative ID is a temporary id
// that attribute data in the same request can refer to.
type ResourceAttrInput struct {
	ID        int64 `json:"id"`
	AttrID    int64 `json:"attr_id"`
	AttrIsVar bool  `json:"attr_is_var"`
}

// DatasetInput is a dataset value. When ID is set the existing dataset is
// used and the other fields are ignored.
type DatasetInput struct {
	ID     int64  `json:"id,omitempty"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Unit   string `json:"unit,omitempty"`
	Value  string `json:"value"`
	Hidden bool   `json:"hidden,omitempty"`
}

// ResourceScenarioInput sets the value of a resource attribute.
type ResourceScenarioInput struct {
	ResourceAttrID int64        `json:"resource_attr_id"`
	Dataset        DatasetInput `json:"dataset"`
	Source         string       `json:"source,omitempty"`
}

type ProjectInput struct {
	ID            int64                   `json:"id,omitempty"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Attributes    []ResourceAttrInput     `json:"attributes,omitempty"`
	AttributeData []ResourceScenarioInput `json:"attribute_data,omitempty"`
}

// ProjectView is a project as returned to callers: its readable networks
// and its attribute data.
type ProjectView struct {
	model.Project
	AttributeData []model.ResourceScenario `json:"attribute_data"`
}

// ProjectsQuery selects the projects returned by GetProjects.
type ProjectsQuery struct {
	IncludeShared bool
	IDs           []int64
}

// CloneProjectInput names the clone and optionally hands it to another user.
type CloneProjectInput struct {
	RecipientUserID *int64 `json:"recipient_user_id,omitempty"`
	Name            string `json:"new_project_name,omitempty"`
	Description     string `json:"new_project_description,omitempty"`
}

// ShareInput grants usernames access to a project and its networks.
type ShareInput struct {
	Usernames []string `json:"usernames"`
	ReadOnly  bool     `json:"read_only"`
	Share     bool     `json:"share"`
}

type ScenarioInput struct {
	Name              string                  `json:"name"`
	Description       string                  `json:"description,omitempty"`
	StartTime         string                  `json:"start_time,omitempty"`
	EndTime           string                  `json:"end_time,omitempty"`
	TimeStep          string                  `json:"time_step,omitempty"`
	ResourceScenarios []ResourceScenarioInput `json:"resourcescenarios,omitempty"`
}

type NetworkInput struct {
	ProjectID   int64               `json:"project_id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Layout      string              `json:"layout,omitempty"`
	Attributes  []ResourceAttrInput `json:"attributes,omitempty"`
	Scenarios   []ScenarioInput     `json:"scenarios,omitempty"`
}

// NetworkQuery shapes GetNetwork results.
type NetworkQuery struct {
	// Summary leaves out scenarios and attributes
	Summary bool
	// IncludeData loads attribute data with datasets
	IncludeData bool
}

// CloneNetworkInput controls a network clone. ProjectID defaults to the
// source network's project.
type CloneNetworkInput struct {
	ProjectID       *int64 `json:"project_id,omitempty"`
	RecipientUserID *int64 `json:"recipient_user_id,omitempty"`
	Name            string `json:"new_network_name,omitempty"`
}

// UserGroupInput creates a usergroup. The type is given by id or by name.
type UserGroupInput struct {
	Name     string `json:"name"`
	TypeID   int64  `json:"type_id,omitempty"`
	Type     string `json:"type,omitempty"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// RangeQuery is a value range request. Start and End are timestamps for
// time indexed series and numbers for relative ones.
type RangeQuery struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
	// Unit is the step unit for time ranges, e.g. "minutes"
	Unit string `json:"timestep,omitempty"`
	// Increment defaults to 1
	Increment *float64 `json:"increment,omitempty"`
}

type CollectionInput struct {
	Name       string  `json:"name"`
	DatasetIDs []int64 `json:"dataset_ids"`
}

// RecordQuery shapes a flattened project record. Levels defaults to the
// configured flatten_levels.
type RecordQuery struct {
	Levels int
	Ignore []string
}
