// Package model defines domain entities exchanged with the prediction service.
package model

// Role is the professional role of an account.
type Role string

const (
	// RoleTechnician captures radiographs and submits them for prediction.
	RoleTechnician Role = "tecnico"
	// RolePhysician validates predictions returned by the model.
	RolePhysician Role = "medico"
)

// User is the profile attached to the current session. The role may be
// absent when the session was restored from a persisted token.
type User struct {
	Email string `json:"email"`
	Role  Role   `json:"rol,omitempty"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	Email  string `json:"email"`
	Name   string `json:"nombre"`
	Role   Role   `json:"rol"`
	Active bool   `json:"activo"`
}

// TokenEnvelope is the service's response to login and register.
type TokenEnvelope struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Prediction is the model's verdict attached to an uploaded radiograph.
type Prediction struct {
	Label             string  `json:"etiqueta"`
	Probability       float64 `json:"probabilidad"`
	ConfidencePercent float64 `json:"confianza_porcentaje"`
	Threshold         float64 `json:"umbral_usado"`
	BinaryResult      string  `json:"resultado_binario"`
}

// Radiograph is a stored radiograph as reported by the service. The client
// treats it as pass-through data and never persists it locally.
type Radiograph struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	State       string      `json:"estado"`
	OwnerID     string      `json:"usuario_id"`
	CaptureDate string      `json:"fecha_captura"`
	CreatedAt   string      `json:"created_at"`
	Filename    string      `json:"filename"`
	ContentType string      `json:"content_type"`
	FileSize    int64       `json:"file_size"`
	Prediction  *Prediction `json:"prediccion,omitempty"`
	ResultID    string      `json:"resultado_id,omitempty"`
}

// UploadResponse is the envelope returned by the upload endpoint.
type UploadResponse struct {
	ID      string     `json:"id"`
	Message string     `json:"message"`
	Data    Radiograph `json:"data"`
}

// Validation is a physician's verdict on a prediction result.
type Validation struct {
	Validated bool   `json:"validado"`
	NewLabel  string `json:"nueva_etiqueta,omitempty"`
	Note      string `json:"observacion,omitempty"`
}

// ValidationResponse confirms a recorded validation.
type ValidationResponse struct {
	Message     string `json:"message"`
	ResultID    string `json:"resultado_id"`
	ValidatedBy string `json:"validado_por"`
	Validated   bool   `json:"validado"`
}

// AuthState is a read-only snapshot of the current session.
type AuthState struct {
	IsAuthenticated bool
	User            *User // nil when unknown (e.g. restored session)
	Token           string
}
