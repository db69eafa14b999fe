package entity

// WorkItem unidad de WIP dentro de un contenedor (chip/sheet).
type WorkItem struct {
	ID         string `json:"workItemId"`
	Model      string `json:"model"`
	Grade      string `json:"grade"`
	Stage      string `json:"stage"`
	OperatorID string `json:"operatorId"`
}

// Container agrupa work-items (cassette) dentro de un bin.
type Container struct {
	ID       string     `json:"containerId"`
	Position int        `json:"position"`
	Units    []WorkItem `json:"units"`
}

// Location resultado de localizar un work-item o contenedor.
type Location struct {
	BinCode     string `json:"binCode,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
	WorkItemID  string `json:"workItemId,omitempty"`
}

// Empty indica que no hubo coincidencia.
func (l Location) Empty() bool {
	return l.BinCode == "" && l.ContainerID == "" && l.WorkItemID == ""
}
