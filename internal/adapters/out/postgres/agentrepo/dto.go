// Package agentrepo persists the agent aggregate with GORM.
package agentrepo

import (
	"time"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is the agents table row. Balance is signed, in whole currency units.
type AgentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;index"`
	Phone     string    `gorm:"not null"`
	Vehicle   string
	Status    int   `gorm:"not null;index"`
	Balance   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AgentDTO) TableName() string {
	return "agents"
}

func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:      a.ID().Bytes(),
		Name:    a.Name(),
		Phone:   a.Phone(),
		Vehicle: a.Vehicle(),
		Status:  int(a.Status()),
		Balance: a.Balance().Amount(),
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(id, dto.Name, dto.Phone, dto.Vehicle, agent.Status(dto.Status), balance)
}
