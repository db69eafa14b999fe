package dto

// BinCodesRequest entrada de las consultas por lote de /data.
type BinCodesRequest struct {
	BinCodes []string `json:"binCodes"`
}

// LocateRequest se espera exactamente uno de los dos identificadores.
type LocateRequest struct {
	WorkItemID  string `json:"workItemId"`
	ContainerID string `json:"containerId"`
}
