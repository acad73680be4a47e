package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core/school"
)

type schoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) GetSchools() ([]school.School, error) {
	schools := []school.School{}
	err := repo.db.Select(&schools, `
		SELECT id, name, email, phone, address, plan, status, students,
		       created_at AS "createdat"
		FROM school ORDER BY created_at`)
	return schools, errors.Wrap(err, "querying schools")
}

func (repo *schoolRepository) PutSchools(schools []school.School) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`DELETE FROM school`); err != nil {
		return errors.Wrap(err, "clearing schools")
	}
	for i := range schools {
		_, err = tx.Exec(`
			INSERT INTO school (id, name, email, phone, address, plan, status, students, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			schools[i].ID, schools[i].Name, schools[i].Email, schools[i].Phone,
			schools[i].Address, schools[i].Plan, schools[i].Status,
			schools[i].Students, schools[i].CreatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "inserting school")
		}
	}
	return errors.Wrap(tx.Commit(), "committing schools")
}

func (repo *schoolRepository) GetAdmins() ([]school.Admin, error) {
	admins := []school.Admin{}
	err := repo.db.Select(&admins, `
		SELECT id, name, email, school_id AS "schoolid", school, status,
		       created_at AS "createdat"
		FROM school_admin ORDER BY created_at`)
	return admins, errors.Wrap(err, "querying admins")
}

func (repo *schoolRepository) PutAdmins(admins []school.Admin) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`DELETE FROM school_admin`); err != nil {
		return errors.Wrap(err, "clearing admins")
	}
	for i := range admins {
		_, err = tx.Exec(`
			INSERT INTO school_admin (id, name, email, school_id, school, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			admins[i].ID, admins[i].Name, admins[i].Email, admins[i].SchoolID,
			admins[i].School, admins[i].Status, admins[i].CreatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "inserting admin")
		}
	}
	return errors.Wrap(tx.Commit(), "committing admins")
}

func (repo *schoolRepository) GetStudents() ([]school.Student, error) {
	students := []school.Student{}
	err := repo.db.Select(&students, `
		SELECT id, name, email, school_id AS "schoolid", school, class, status
		FROM student ORDER BY id`)
	return students, errors.Wrap(err, "querying students")
}

func (repo *schoolRepository) PutStudents(students []school.Student) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`DELETE FROM student`); err != nil {
		return errors.Wrap(err, "clearing students")
	}
	for i := range students {
		_, err = tx.Exec(`
			INSERT INTO student (id, name, email, school_id, school, class, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			students[i].ID, students[i].Name, students[i].Email, students[i].SchoolID,
			students[i].School, students[i].Class, students[i].Status,
		)
		if err != nil {
			return errors.Wrap(err, "inserting student")
		}
	}
	return errors.Wrap(tx.Commit(), "committing students")
}
