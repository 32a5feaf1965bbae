package domain

import "fmt"

// Capability is a resource/action pair checked before a route runs.
type Capability struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func (c Capability) String() string {
	return fmt.Sprintf("%s:%s", c.Resource, c.Action)
}

type EnforceRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
