package school

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var NowFunc = time.Now // mockable

type (
	// Repository persists each collection wholesale behind its own key.
	Repository interface {
		GetSchools() ([]School, error)
		PutSchools([]School) error
		GetAdmins() ([]Admin, error)
		PutAdmins([]Admin) error
		GetStudents() ([]Student, error)
		PutStudents([]Student) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Schools() ([]School, error) {
	return svc.repo.GetSchools()
}

func (svc *Service) CreateSchool(ns NewSchool) (School, error) {
	schools, err := svc.repo.GetSchools()
	if err != nil {
		return School{}, err
	}
	for i := range schools {
		if schools[i].Email == ns.Email {
			return School{}, ErrEmailExists
		}
	}

	sch := School{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		Email:     ns.Email,
		Phone:     ns.Phone,
		Address:   ns.Address,
		Plan:      ns.Plan,
		Status:    StatusActive,
		CreatedAt: NowFunc().UTC(),
	}
	schools = append(schools, sch)
	if err = svc.repo.PutSchools(schools); err != nil {
		return School{}, errors.Wrap(err, "persisting school")
	}
	return sch, nil
}

func (svc *Service) Admins() ([]Admin, error) {
	return svc.repo.GetAdmins()
}

func (svc *Service) CreateAdmin(na NewAdmin) (Admin, error) {
	admins, err := svc.repo.GetAdmins()
	if err != nil {
		return Admin{}, err
	}
	for i := range admins {
		if admins[i].Email == na.Email {
			return Admin{}, ErrEmailExists
		}
	}

	var schoolName string
	schools, err := svc.repo.GetSchools()
	if err != nil {
		return Admin{}, err
	}
	for i := range schools {
		if schools[i].ID == na.SchoolID {
			schoolName = schools[i].Name
			break
		}
	}

	adm := Admin{
		ID:        uuid.New().String(),
		Name:      na.Name,
		Email:     na.Email,
		SchoolID:  na.SchoolID,
		School:    schoolName,
		Status:    StatusActive,
		CreatedAt: NowFunc().UTC(),
	}
	admins = append(admins, adm)
	if err = svc.repo.PutAdmins(admins); err != nil {
		return Admin{}, errors.Wrap(err, "persisting admin")
	}
	return adm, nil
}

func (svc *Service) UpdateAdmin(id string, ua UpdateAdmin) (Admin, error) {
	admins, err := svc.repo.GetAdmins()
	if err != nil {
		return Admin{}, err
	}
	for i := range admins {
		if admins[i].ID != id {
			continue
		}
		if ua.Name != "" {
			admins[i].Name = ua.Name
		}
		if ua.Email != "" {
			admins[i].Email = ua.Email
		}
		if err = svc.repo.PutAdmins(admins); err != nil {
			return Admin{}, errors.Wrap(err, "persisting admin")
		}
		return admins[i], nil
	}
	return Admin{}, ErrNotFound
}

// SetAdminStatus toggles an admin between active and suspended.
func (svc *Service) SetAdminStatus(id, status string) (Admin, error) {
	admins, err := svc.repo.GetAdmins()
	if err != nil {
		return Admin{}, err
	}
	for i := range admins {
		if admins[i].ID != id {
			continue
		}
		admins[i].Status = status
		if err = svc.repo.PutAdmins(admins); err != nil {
			return Admin{}, errors.Wrap(err, "persisting admin status")
		}
		return admins[i], nil
	}
	return Admin{}, ErrNotFound
}

func (svc *Service) DeleteAdmin(id string) error {
	admins, err := svc.repo.GetAdmins()
	if err != nil {
		return err
	}
	for i := range admins {
		if admins[i].ID == id {
			admins = append(admins[:i], admins[i+1:]...)
			return svc.repo.PutAdmins(admins)
		}
	}
	return ErrNotFound
}

func (svc *Service) Students() ([]Student, error) {
	return svc.repo.GetStudents()
}

// Stats aggregates collection counts. The active-ticket figure is supplied
// by the caller; tickets live in their own store.
func (svc *Service) Stats(activeTickets int) (Stats, error) {
	schools, err := svc.repo.GetSchools()
	if err != nil {
		return Stats{}, err
	}
	admins, err := svc.repo.GetAdmins()
	if err != nil {
		return Stats{}, err
	}
	students, err := svc.repo.GetStudents()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Schools:       len(schools),
		Admins:        len(admins),
		Students:      len(students),
		ActiveTickets: activeTickets,
	}, nil
}
