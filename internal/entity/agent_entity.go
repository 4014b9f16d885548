package entity

import (
	"strings"
	"time"
)

type AgentType string

const (
	AgentTypeSales     AgentType = "sales"
	AgentTypeMarketing AgentType = "marketing"
	AgentTypeHR        AgentType = "hr"
	AgentTypePurchase  AgentType = "purchase"

	DefaultAgentType = AgentTypeSales
)

// AgentTypeInfo is the display catalogue entry of an agent type.
type AgentTypeInfo struct {
	Label       string
	Description string
}

var agentTypeCatalogue = map[AgentType]AgentTypeInfo{
	AgentTypeSales:     {Label: "Sales", Description: "Spécialisé dans les ventes et la prospection"},
	AgentTypeMarketing: {Label: "Marketing", Description: "Expert en marketing et communication"},
	AgentTypeHR:        {Label: "RH", Description: "Gestion des ressources humaines"},
	AgentTypePurchase:  {Label: "Achats", Description: "Gestion des achats et fournisseurs"},
}

// AgentTypes lists the closed set in display order.
func AgentTypes() []AgentType {
	return []AgentType{AgentTypeSales, AgentTypeMarketing, AgentTypeHR, AgentTypePurchase}
}

func IsKnownAgentType(raw string) bool {
	_, ok := agentTypeCatalogue[AgentType(strings.ToLower(strings.TrimSpace(raw)))]
	return ok
}

// ParseAgentType normalises raw; unknown or missing types become sales.
func ParseAgentType(raw string) AgentType {
	t := AgentType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := agentTypeCatalogue[t]; ok {
		return t
	}
	return DefaultAgentType
}

func (t AgentType) Info() AgentTypeInfo {
	return agentTypeCatalogue[ParseAgentType(string(t))]
}

func (t AgentType) String() string {
	return string(ParseAgentType(string(t)))
}

type Agent struct {
	Id          string
	Name        string
	Type        AgentType
	Description string
	CreatedAt   *time.Time
}
