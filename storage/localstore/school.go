package localstore

import (
	"github.com/megatechsolutions/superadmin/core/school"
)

type schoolRepository struct {
	store *Store
}

func NewSchoolRepository(store *Store) school.Repository {
	return &schoolRepository{store: store}
}

func (repo *schoolRepository) GetSchools() ([]school.School, error) {
	var schools []school.School
	if err := repo.store.Get(KeySchools, &schools); err != nil {
		return []school.School{}, nil
	}
	return schools, nil
}

func (repo *schoolRepository) PutSchools(schools []school.School) error {
	return repo.store.Put(KeySchools, schools)
}

func (repo *schoolRepository) GetAdmins() ([]school.Admin, error) {
	var admins []school.Admin
	if err := repo.store.Get(KeyAdmins, &admins); err != nil {
		return []school.Admin{}, nil
	}
	return admins, nil
}

func (repo *schoolRepository) PutAdmins(admins []school.Admin) error {
	return repo.store.Put(KeyAdmins, admins)
}

func (repo *schoolRepository) GetStudents() ([]school.Student, error) {
	var students []school.Student
	if err := repo.store.Get(KeyStudents, &students); err != nil {
		return []school.Student{}, nil
	}
	return students, nil
}

func (repo *schoolRepository) PutStudents(students []school.Student) error {
	return repo.store.Put(KeyStudents, students)
}
