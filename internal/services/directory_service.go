package services

import (
	"database/sql"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

// DirectoryService covers the admin-side management of users, accounts,
// vehicles and drivers. Every mutation lands in the admin audit trail.
type DirectoryService struct {
	UserRepo    repositories.UserRepo
	AccountRepo repositories.AccountRepo
	VehicleRepo repositories.VehicleRepo
	DriverRepo  repositories.DriverRepo
	LogRepo     repositories.AdminLogRepo
	DB          *sql.DB
	RequestID   string
}

func (s DirectoryService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DirectoryService) userRepo() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s DirectoryService) accountRepo() repositories.AccountRepo {
	if s.AccountRepo.DB != nil {
		return s.AccountRepo
	}
	return repositories.AccountRepo{DB: s.db()}
}

func (s DirectoryService) vehicleRepo() repositories.VehicleRepo {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepo{DB: s.db()}
}

func (s DirectoryService) driverRepo() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s DirectoryService) logRepo() repositories.AdminLogRepo {
	if s.LogRepo.DB != nil {
		return s.LogRepo
	}
	return repositories.AdminLogRepo{DB: s.db()}
}

func (s DirectoryService) audit(adminID int64, action, entity string, entityID int64, desc string) {
	_ = s.logRepo().Insert(models.AdminLog{
		AdminID:     adminID,
		ActionType:  action,
		EntityType:  entity,
		EntityID:    entityID,
		Description: desc,
	})
}

type UserInput struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Password string
	Role     string
}

func (s DirectoryService) validateUser(in UserInput, requirePassword bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if strings.TrimSpace(in.Username) == "" {
		return domain.ValidationError{Field: "username", Msg: "required"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.ValidationError{Field: "email", Msg: "invalid address", Err: err}
	}
	if requirePassword && len(in.Password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	if in.Password != "" && len(in.Password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	if !models.ValidRole(in.Role) {
		return domain.ValidationError{Field: "role", Msg: "unknown role"}
	}
	return nil
}

func (s DirectoryService) CreateUser(adminID int64, in UserInput) (models.User, error) {
	var out models.User
	if err := s.validateUser(in, true); err != nil {
		return out, err
	}
	exists, err := s.userRepo().ExistsByEmailOrUsername(in.Email, in.Username)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if exists {
		return out, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	id, err := s.userRepo().Create(models.User{
		Name:     strings.TrimSpace(in.Name),
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     in.Role,
	}, string(hash))
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if err := s.accountRepo().CreateFor(id); err != nil {
		return out, domain.InternalError{Err: err}
	}
	s.audit(adminID, "create", "user", id, fmt.Sprintf("created user %q (%s)", in.Username, in.Role))
	return s.userRepo().GetByID(id)
}

func (s DirectoryService) UpdateUser(adminID, id int64, in UserInput) (models.User, error) {
	var out models.User
	if err := s.validateUser(in, false); err != nil {
		return out, err
	}
	hash := ""
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		hash = string(h)
	}
	if err := s.userRepo().Update(id, models.User{
		Name:     strings.TrimSpace(in.Name),
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     in.Role,
	}, hash); err != nil {
		return out, err
	}
	if hash != "" {
		_ = s.accountRepo().TouchPasswordChanged(id)
	}
	s.audit(adminID, "update", "user", id, fmt.Sprintf("updated user %q", in.Username))
	return s.userRepo().GetByID(id)
}

func (s DirectoryService) DeleteUser(adminID, id int64) error {
	if err := s.userRepo().Delete(id); err != nil {
		return err
	}
	s.audit(adminID, "delete", "user", id, "deleted user")
	return nil
}

// SetAccountStatus flips the login gate; a Disabled or Deleted account
// cannot log in regardless of credentials.
func (s DirectoryService) SetAccountStatus(adminID, userID int64, status string) error {
	if !models.ValidAccountStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	if _, err := s.userRepo().GetByID(userID); err != nil {
		return err
	}
	if err := s.accountRepo().UpdateStatus(userID, status); err != nil {
		return domain.InternalError{Err: err}
	}
	s.audit(adminID, "update", "account", userID, "set account status to "+status)
	return nil
}

type VehicleInput struct {
	PlateNumber string
	VehicleType string
	Brand       string
	Model       string
	Year        int
	Capacity    int
	Color       string
	Status      string
}

func (s DirectoryService) validateVehicle(in VehicleInput) error {
	if strings.TrimSpace(in.PlateNumber) == "" {
		return domain.ValidationError{Field: "plate_number", Msg: "required"}
	}
	if !models.ValidVehicleType(in.VehicleType) {
		return domain.ValidationError{Field: "vehicle_type", Msg: "unknown type"}
	}
	if in.Capacity < 1 {
		return domain.ValidationError{Field: "capacity", Msg: "must be at least 1"}
	}
	if in.Status != "" && !models.ValidVehicleStatus(in.Status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	return nil
}

func (s DirectoryService) CreateVehicle(adminID int64, in VehicleInput) (models.Vehicle, error) {
	var out models.Vehicle
	if err := s.validateVehicle(in); err != nil {
		return out, err
	}
	status := in.Status
	if status == "" {
		status = models.VehicleAvailable
	}
	id, err := s.vehicleRepo().Create(models.Vehicle{
		PlateNumber: strings.ToUpper(strings.TrimSpace(in.PlateNumber)),
		VehicleType: in.VehicleType,
		Brand:       strings.TrimSpace(in.Brand),
		Model:       strings.TrimSpace(in.Model),
		Year:        in.Year,
		Capacity:    in.Capacity,
		Color:       strings.TrimSpace(in.Color),
		Status:      status,
	})
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	s.audit(adminID, "create", "vehicle", id, fmt.Sprintf("created vehicle %s", in.PlateNumber))
	return s.vehicleRepo().GetByID(id)
}

func (s DirectoryService) UpdateVehicle(adminID, id int64, in VehicleInput) (models.Vehicle, error) {
	var out models.Vehicle
	if err := s.validateVehicle(in); err != nil {
		return out, err
	}
	status := in.Status
	if status == "" {
		status = models.VehicleAvailable
	}
	if err := s.vehicleRepo().Update(id, models.Vehicle{
		PlateNumber: strings.ToUpper(strings.TrimSpace(in.PlateNumber)),
		VehicleType: in.VehicleType,
		Brand:       strings.TrimSpace(in.Brand),
		Model:       strings.TrimSpace(in.Model),
		Year:        in.Year,
		Capacity:    in.Capacity,
		Color:       strings.TrimSpace(in.Color),
		Status:      status,
	}); err != nil {
		return out, err
	}
	s.audit(adminID, "update", "vehicle", id, fmt.Sprintf("updated vehicle %s", in.PlateNumber))
	return s.vehicleRepo().GetByID(id)
}

func (s DirectoryService) DeleteVehicle(adminID, id int64) error {
	if err := s.vehicleRepo().Delete(id); err != nil {
		return err
	}
	s.audit(adminID, "delete", "vehicle", id, "deleted vehicle")
	return nil
}

type DriverInput struct {
	// New user fields; used by CreateDriver only.
	Name     string
	Username string
	Email    string
	Phone    string
	Password string

	VehicleID     *int64
	LicenseNumber string
	LicenseType   string
	LicenseExpiry *time.Time
	Status        string
}

// CreateDriver provisions the user, its account and the driver profile in
// one flow.
func (s DirectoryService) CreateDriver(adminID int64, in DriverInput) (models.Driver, error) {
	var out models.Driver
	if strings.TrimSpace(in.LicenseNumber) == "" {
		return out, domain.ValidationError{Field: "license_number", Msg: "required"}
	}
	if in.Status != "" && !models.ValidDriverStatus(in.Status) {
		return out, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	user, err := s.CreateUser(adminID, UserInput{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Role:     models.RoleDriver,
	})
	if err != nil {
		return out, err
	}
	status := in.Status
	if status == "" {
		status = models.DriverAvailable
	}
	if in.VehicleID != nil {
		if _, err := s.vehicleRepo().GetByID(*in.VehicleID); err != nil {
			return out, err
		}
	}
	id, err := s.driverRepo().Create(models.Driver{
		UserID:        user.ID,
		VehicleID:     in.VehicleID,
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		LicenseType:   strings.TrimSpace(in.LicenseType),
		LicenseExpiry: in.LicenseExpiry,
		Status:        status,
	})
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	s.audit(adminID, "create", "driver", id, fmt.Sprintf("created driver %q", in.Username))
	utils.LogEvent(s.RequestID, "drivers", "create", fmt.Sprintf("driver_id=%d user_id=%d", id, user.ID))
	return s.driverRepo().GetByID(id)
}

func (s DirectoryService) UpdateDriver(adminID, id int64, in DriverInput) (models.Driver, error) {
	var out models.Driver
	if strings.TrimSpace(in.LicenseNumber) == "" {
		return out, domain.ValidationError{Field: "license_number", Msg: "required"}
	}
	status := in.Status
	if status == "" {
		status = models.DriverAvailable
	}
	if !models.ValidDriverStatus(status) {
		return out, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	if in.VehicleID != nil {
		if _, err := s.vehicleRepo().GetByID(*in.VehicleID); err != nil {
			return out, err
		}
	}
	if err := s.driverRepo().Update(id, models.Driver{
		VehicleID:     in.VehicleID,
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		LicenseType:   strings.TrimSpace(in.LicenseType),
		LicenseExpiry: in.LicenseExpiry,
		Status:        status,
	}); err != nil {
		return out, err
	}
	s.audit(adminID, "update", "driver", id, "updated driver profile")
	return s.driverRepo().GetByID(id)
}

func (s DirectoryService) DeleteDriver(adminID, id int64) error {
	if err := s.driverRepo().Delete(id); err != nil {
		return err
	}
	s.audit(adminID, "delete", "driver", id, "deleted driver")
	return nil
}

// AssignVehicle attaches a vehicle to a driver; vehicleID 0 clears the
// assignment.
func (s DirectoryService) AssignVehicle(adminID, driverID, vehicleID int64) (models.Driver, error) {
	var out models.Driver
	if _, err := s.driverRepo().GetByID(driverID); err != nil {
		return out, err
	}
	if vehicleID != 0 {
		if _, err := s.vehicleRepo().GetByID(vehicleID); err != nil {
			return out, err
		}
	}
	if err := s.driverRepo().AssignVehicle(driverID, vehicleID); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if vehicleID == 0 {
		s.audit(adminID, "update", "driver", driverID, "cleared vehicle assignment")
	} else {
		s.audit(adminID, "update", "driver", driverID, fmt.Sprintf("assigned vehicle %d", vehicleID))
	}
	return s.driverRepo().GetByID(driverID)
}
