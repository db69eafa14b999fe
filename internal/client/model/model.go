// Package model tipos compartidos por el núcleo del cliente: layouts, componentes,
// ocupación y sesión, con la forma en que viajan por la API.
package model

import (
	"encoding/json"
	"time"
)

// Roles conocidos; cualquier otro cuenta como worker.
const (
	RoleWorker     = "worker"
	RoleMaintainer = "maintainer"
	RoleAdmin      = "admin"

	DefaultRole = RoleWorker
)

// Variantes de componente.
const (
	ComponentBin     = "bin"
	ComponentPillar  = "pillar"
	ComponentMarker  = "marker"
	ComponentMachine = "machine"
)

var roleLevels = map[string]int{RoleWorker: 0, RoleMaintainer: 1, RoleAdmin: 2}

// RoleLevel nivel jerárquico del rol.
func RoleLevel(role string) int { return roleLevels[role] }

// Layout metadatos de un plano.
type Layout struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Floor  string `json:"floor,omitempty"`
	Area   string `json:"area,omitempty"`
}

// LayoutDetail layout con sus componentes.
type LayoutDetail struct {
	Layout
	Components []Component `json:"components"`
}

// BinCodes códigos de los componentes bin que tienen código, en orden y sin repetir.
func (d LayoutDetail) BinCodes() []string {
	seen := make(map[string]struct{}, len(d.Components))
	var codes []string
	for _, c := range d.Components {
		if c.Type != ComponentBin || c.Code == nil || *c.Code == "" {
			continue
		}
		if _, ok := seen[*c.Code]; ok {
			continue
		}
		seen[*c.Code] = struct{}{}
		codes = append(codes, *c.Code)
	}
	return codes
}

// LayoutDraft datos para crear un layout; Width/Height cero toman el valor por defecto del servidor.
type LayoutDraft struct {
	Name   string `json:"name"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Floor  string `json:"floor,omitempty"`
	Area   string `json:"area,omitempty"`
}

// LayoutPatch actualización parcial; nil = sin cambio.
type LayoutPatch struct {
	Name   *string `json:"name,omitempty"`
	Width  *int    `json:"width,omitempty"`
	Height *int    `json:"height,omitempty"`
	Floor  *string `json:"floor,omitempty"`
	Area   *string `json:"area,omitempty"`
}

// Point vértice de un contorno libre.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Component figura colocada en un layout. Contents es el contenido WIP adjuntado para
// mostrar; es transitorio y nunca se envía ni se persiste.
type Component struct {
	ID          string          `json:"id"`
	LayoutID    string          `json:"layoutId"`
	Type        string          `json:"type"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Rotation    float64         `json:"rotation"`
	ShapePoints []Point         `json:"shapePoints"`
	Code        *string         `json:"code"`
	Props       json.RawMessage `json:"props,omitempty"`

	Contents []Container `json:"-"`
}

// CodeOrEmpty devuelve el código o "".
func (c Component) CodeOrEmpty() string {
	if c.Code == nil {
		return ""
	}
	return *c.Code
}

// ComponentDraft datos para colocar un componente; la geometría nil toma los valores por defecto.
type ComponentDraft struct {
	Type        string          `json:"type"`
	X           *float64        `json:"x,omitempty"`
	Y           *float64        `json:"y,omitempty"`
	Width       *float64        `json:"width,omitempty"`
	Height      *float64        `json:"height,omitempty"`
	Rotation    *float64        `json:"rotation,omitempty"`
	ShapePoints []Point         `json:"shapePoints,omitempty"`
	Code        string          `json:"code,omitempty"`
	Props       json.RawMessage `json:"props,omitempty"`
}

// ComponentPatch actualización parcial de un componente. ShapePoints apuntando a una
// lista vacía borra el contorno.
type ComponentPatch struct {
	X           *float64        `json:"x,omitempty"`
	Y           *float64        `json:"y,omitempty"`
	Width       *float64        `json:"width,omitempty"`
	Height      *float64        `json:"height,omitempty"`
	Rotation    *float64        `json:"rotation,omitempty"`
	ShapePoints *[]Point        `json:"shapePoints,omitempty"`
	Code        *string         `json:"code,omitempty"`
	Props       json.RawMessage `json:"props,omitempty"`
}

// Unit work-item dentro de un contenedor.
type Unit struct {
	WorkItemID string `json:"workItemId"`
	Model      string `json:"model"`
	Grade      string `json:"grade"`
	Stage      string `json:"stage,omitempty"`
	OperatorID string `json:"operatorId"`
}

// Container contenedor (cassette) dentro de un bin.
type Container struct {
	ContainerID string `json:"containerId"`
	Position    int    `json:"position"`
	Units       []Unit `json:"units"`
}

// LocateQuery se espera exactamente uno de los dos identificadores.
type LocateQuery struct {
	WorkItemID  string `json:"workItemId,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
}

// Empty indica que no hay identificador que buscar.
func (q LocateQuery) Empty() bool { return q.WorkItemID == "" && q.ContainerID == "" }

// Location resultado de Locate; el valor cero significa "sin resultado".
type Location struct {
	BinCode     string `json:"binCode,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
	WorkItemID  string `json:"workItemId,omitempty"`
}

// Found indica si hubo coincidencia.
func (l Location) Found() bool { return l.BinCode != "" }

// User usuario tal como lo devuelve el servidor.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult respuesta de login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Principal identidad autenticada actual.
type Principal struct {
	Username string
	Role     string
}
