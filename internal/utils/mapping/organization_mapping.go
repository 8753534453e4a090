package mapping

import (
	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/models"
)

func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID:   d.OrganizationID,
		Name:             d.Name,
		BaseCurrencyCode: d.BaseCurrencyCode,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID:   m.OrganizationID,
		Name:             m.Name,
		BaseCurrencyCode: m.BaseCurrencyCode,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:      d.UserID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainMembership(m models.Membership) domain.Membership {
	return domain.Membership{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           domain.MemberRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}
