package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

// DirectoryStore owns companies, employees and administrator accounts.
// The booking engine only consumes it for the employee-to-company mapping;
// everything else serves the directory CRUD surface.
type DirectoryStore struct{ db *gorm.DB }

func NewDirectoryStore(db *gorm.DB) *DirectoryStore { return &DirectoryStore{db: db} }

// CompanyOf implements auth.Directory.
func (s *DirectoryStore) CompanyOf(ctx context.Context, empID uuid.UUID) (uuid.UUID, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).Select("comp_id").Where("emp_id = ?", empID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, apperr.NotFound("employee not found")
	}
	if err != nil {
		return uuid.Nil, err
	}
	return emp.CompID, nil
}

// -------- companies --------

type CreateCompanyInput struct {
	CompanyName     string
	About           *string
	ManagerName     string
	ManagerEmail    string
	ManagerPosition string
}

// CreateCompanyWithManager creates the company and its first manager in one
// transaction, so no company ever exists without a manager to onboard it.
func (s *DirectoryStore) CreateCompanyWithManager(ctx context.Context, in CreateCompanyInput) (*models.Company, *models.Employee, error) {
	comp := models.Company{
		CompID:      uuid.New(),
		CompanyName: in.CompanyName,
		About:       in.About,
		CreatedAt:   time.Now().UTC(),
	}
	mgr := models.Employee{
		EmpID:     uuid.New(),
		Name:      in.ManagerName,
		Position:  in.ManagerPosition,
		CompID:    comp.CompID,
		Email:     in.ManagerEmail,
		Role:      models.RoleManager,
		CreatedAt: comp.CreatedAt,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comp).Error; err != nil {
			return err
		}
		return tx.Create(&mgr).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &comp, &mgr, nil
}

func (s *DirectoryStore) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var comp models.Company
	err := s.db.WithContext(ctx).Where("comp_id = ?", id).First(&comp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("company not found")
	}
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

type CompanyFilter struct {
	Page  int
	Limit int
	Name  string
}

func (s *DirectoryStore) ListCompanies(ctx context.Context, f CompanyFilter) ([]models.Company, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.Company{})
	if f.Name != "" {
		q = q.Where("company_name ILIKE ?", "%"+f.Name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	companies := []models.Company{}
	err := q.Order("created_at desc").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&companies).Error
	return companies, total, err
}

type UpdateCompanyInput struct {
	CompanyName *string
	About       *string
}

func (s *DirectoryStore) UpdateCompany(ctx context.Context, id uuid.UUID, in UpdateCompanyInput) (*models.Company, error) {
	patch := map[string]any{}
	if in.CompanyName != nil {
		patch["company_name"] = *in.CompanyName
	}
	if in.About != nil {
		patch["about"] = *in.About
	}
	if len(patch) == 0 {
		return nil, apperr.Validation("no parameters provided")
	}

	res := s.db.WithContext(ctx).Model(&models.Company{}).Where("comp_id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("company not found")
	}
	return s.GetCompany(ctx, id)
}

// DeleteCompany removes the company and, through the FK cascade, all of its
// employees.
func (s *DirectoryStore) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("comp_id = ?", id).Delete(&models.Company{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("company not found")
	}
	return nil
}

// -------- employees --------

type InviteEmployeeInput struct {
	Name     string
	Position string
	Email    string
	CompID   uuid.UUID
}

// InviteEmployee creates an employee row with no password; the account is
// unusable until activated through the invite token.
func (s *DirectoryStore) InviteEmployee(ctx context.Context, in InviteEmployeeInput) (*models.Employee, error) {
	emp := models.Employee{
		EmpID:     uuid.New(),
		Name:      in.Name,
		Position:  in.Position,
		CompID:    in.CompID,
		Email:     in.Email,
		Role:      models.RoleEmployee,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

// GetEmployee fetches an employee scoped to a company; an employee of a
// different company is a not-found, not a forbidden.
func (s *DirectoryStore) GetEmployee(ctx context.Context, id, compID uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).Where("emp_id = ? AND comp_id = ?", id, compID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("employee not found")
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *DirectoryStore) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("employee not found")
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

type EmployeeFilter struct {
	Page     int
	Limit    int
	Name     string
	Position string
}

func (s *DirectoryStore) ListEmployees(ctx context.Context, compID uuid.UUID, f EmployeeFilter) ([]models.Employee, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.Employee{}).Where("comp_id = ?", compID)
	if f.Name != "" {
		q = q.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Position != "" {
		q = q.Where("position ILIKE ?", "%"+f.Position+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	employees := []models.Employee{}
	err := q.Order("created_at desc").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&employees).Error
	return employees, total, err
}

type UpdateEmployeeInput struct {
	Name     *string
	Position *string
}

func (s *DirectoryStore) UpdateEmployee(ctx context.Context, id, compID uuid.UUID, in UpdateEmployeeInput) (*models.Employee, error) {
	patch := map[string]any{}
	if in.Name != nil {
		patch["name"] = *in.Name
	}
	if in.Position != nil {
		patch["position"] = *in.Position
	}
	if len(patch) == 0 {
		return nil, apperr.Validation("no parameters provided")
	}

	res := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("emp_id = ? AND comp_id = ?", id, compID).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("employee not found")
	}
	return s.GetEmployee(ctx, id, compID)
}

func (s *DirectoryStore) DeleteEmployee(ctx context.Context, id, compID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("emp_id = ? AND comp_id = ?", id, compID).Delete(&models.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("employee not found")
	}
	return nil
}

// SetPasswordIfUnset activates an invited account. A second activation
// attempt finds no row with a NULL hash and is rejected.
func (s *DirectoryStore) SetPasswordIfUnset(ctx context.Context, empID uuid.UUID, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("emp_id = ? AND password_hash IS NULL", empID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Unauthorized("do not have access")
	}
	return nil
}

// -------- administrators --------

func (s *DirectoryStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var adm models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&adm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("admin not found")
	}
	if err != nil {
		return nil, err
	}
	return &adm, nil
}

// EnsureAdmin seeds the administrator account on first boot. Existing
// accounts are left untouched.
func (s *DirectoryStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&models.Admin{
		AdminID:      uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}).Error
}
