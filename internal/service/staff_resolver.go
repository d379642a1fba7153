package service

import (
	"context"
	"errors"
	"strings"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// profileResolver maps display names to active profile ids. Misses are soft.
type profileResolver struct {
	repo repository.ProfileRepository
	log  logrus.FieldLogger
}

func newProfileResolver(repo repository.ProfileRepository, log logrus.FieldLogger) *profileResolver {
	return &profileResolver{repo: repo, log: log}
}

func (r *profileResolver) ResolveStaff(ctx context.Context, name string) *uuid.UUID {
	id, err := r.resolve(ctx, name, model.RoleBarber)
	if err != nil {
		return nil
	}
	return id
}

func (r *profileResolver) ResolveClient(ctx context.Context, name string) (*uuid.UUID, error) {
	return r.resolve(ctx, name, model.RoleClient)
}

func (r *profileResolver) resolve(ctx context.Context, name, role string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLookupMiss
	}

	profile, err := r.repo.FindActiveByName(ctx, name, role)
	if err != nil {
		log := r.log.WithFields(logrus.Fields{"name": name, "role": role})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("PDV.ResolveProfile: not found")
			return nil, ErrLookupMiss
		}
		log.WithError(err).Warn("PDV.ResolveProfile")
		return nil, err
	}
	return &profile.ID, nil
}
