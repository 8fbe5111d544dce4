package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lrmsph/lrms-backend/internal/types"
	"github.com/lrmsph/lrms-backend/internal/utils"
)

func newUserServiceUnderTest(t *testing.T, repo *fakeUserRepo, mailer Mailer) UserService {
	t.Helper()
	return NewUserService(nil, newTestLogger(t), repo, mailer, "test-secret", time.Hour)
}

func seedActiveUser(t *testing.T, repo *fakeUserRepo, email, password string) *types.User {
	t.Helper()
	digest, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return repo.add(&types.User{
		Email:     email,
		Password:  digest,
		FirstName: "Jane",
		LastName:  "Cruz",
		Role:      "USER",
		IsActive:  true,
		Profile: &types.Profile{
			FirstName:    "Jane",
			LastName:     "Cruz",
			EmailAddress: email,
			Role:         "USER",
		},
	})
}

func TestRegisterCreatesUserWithProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "new@example.com",
		Password:  "s3cret",
		FirstName: "Ana",
		LastName:  "Reyes",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("registered user must get an id")
	}
	if user.Profile == nil {
		t.Fatalf("registration must create the profile alongside the account")
	}
	if user.Profile.EmailAddress != "new@example.com" {
		t.Fatalf("profile email mirror: got %q", user.Profile.EmailAddress)
	}
	if user.Password == "s3cret" {
		t.Fatalf("stored password must be a digest, not the plaintext")
	}
	if !utils.CheckPassword(user.Password, "s3cret") {
		t.Fatalf("digest must verify against the original plaintext")
	}
	if user.Role != "USER" {
		t.Fatalf("default role: want=USER got=%q", user.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	seedActiveUser(t, repo, "taken@example.com", "whatever")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "taken@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("no second account may be created, have %d", len(repo.users))
	}
}

func TestLoginSuccessRecordsLastLoginAndIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	seeded := seedActiveUser(t, repo, "jane@example.com", "correct-horse")

	user, token, err := svc.Login(context.Background(), "jane@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("login must issue an access token")
	}
	if user.ID != seeded.ID {
		t.Fatalf("user id: want=%d got=%d", seeded.ID, user.ID)
	}
	if user.LastLogin == nil {
		t.Fatalf("last login must be recorded on success")
	}
	if len(repo.lastLoginCalls) != 1 {
		t.Fatalf("expected one last-login update, got %d", len(repo.lastLoginCalls))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	seedActiveUser(t, repo, "jane@example.com", "correct-horse")

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if len(repo.lastLoginCalls) != 0 {
		t.Fatalf("failed login must not update last login")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	user := seedActiveUser(t, repo, "gone@example.com", "pw")
	user.IsActive = false

	_, _, err := svc.Login(context.Background(), "gone@example.com", "pw")
	if !errors.Is(err, ErrDeactivated) {
		t.Fatalf("want ErrDeactivated, got %v", err)
	}
	if len(repo.lastLoginCalls) != 0 {
		t.Fatalf("deactivated login must not update last login")
	}
}

func TestSplitProfileUpdate(t *testing.T) {
	firstName := "Maria"
	email := "maria@example.com"
	age := 29

	userCols, profileCols := splitProfileUpdate(ProfileUpdate{
		FirstName:    &firstName,
		EmailAddress: &email,
		Age:          &age,
	})

	if userCols["first_name"] != "Maria" {
		t.Fatalf("user first_name: got %v", userCols["first_name"])
	}
	if userCols["email"] != "maria@example.com" {
		t.Fatalf("emailAddress must map to the account email column, got %v", userCols["email"])
	}
	if userCols["age"] != 29 {
		t.Fatalf("user age: got %v", userCols["age"])
	}
	if profileCols["email_address"] != "maria@example.com" {
		t.Fatalf("profile email_address: got %v", profileCols["email_address"])
	}
	if profileCols["first_name"] != "Maria" {
		t.Fatalf("profile first_name: got %v", profileCols["first_name"])
	}
	if _, ok := profileCols["email"]; ok {
		t.Fatalf("profile map must not carry the account email column")
	}
	if _, ok := userCols["last_name"]; ok {
		t.Fatalf("unset fields must not appear in the split maps")
	}
}

func TestUpdateProfileMissingProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	user := repo.add(&types.User{Email: "orphan@example.com", FirstName: "No", LastName: "Profile", IsActive: true})

	firstName := "Changed"
	_, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{FirstName: &firstName})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for account without profile, got %v", err)
	}
	if len(repo.userFieldUpdates) != 0 {
		t.Fatalf("account-level fields must not be touched when the profile is missing")
	}
	if user.FirstName != "No" {
		t.Fatalf("account first name must be unchanged, got %q", user.FirstName)
	}
}

func TestUpdateProfileAppliesBothTargets(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	user := seedActiveUser(t, repo, "jane@example.com", "pw")

	firstName := "Juana"
	email := "juana@example.com"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{
		FirstName:    &firstName,
		EmailAddress: &email,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Juana" {
		t.Fatalf("account first name: got %q", updated.FirstName)
	}
	if updated.Email != "juana@example.com" {
		t.Fatalf("account email: got %q", updated.Email)
	}
	if updated.Profile.FirstName != "Juana" {
		t.Fatalf("profile first name mirror: got %q", updated.Profile.FirstName)
	}
	if updated.Profile.EmailAddress != "juana@example.com" {
		t.Fatalf("profile email mirror: got %q", updated.Profile.EmailAddress)
	}
}

func TestChangePasswordSetsChangedFlag(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})
	user := seedActiveUser(t, repo, "jane@example.com", "old-pw")

	if err := svc.ChangePassword(context.Background(), user.ID, "new-pw"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if !user.IsChanged {
		t.Fatalf("is_changed must be set after a password change")
	}
	if !utils.CheckPassword(user.Password, "new-pw") {
		t.Fatalf("stored digest must verify against the new password")
	}
}

func TestResetPasswordNotifiesUser(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newUserServiceUnderTest(t, repo, mailer)
	user := seedActiveUser(t, repo, "jane@example.com", "old-pw")

	if err := svc.ResetPassword(context.Background(), "jane@example.com", "fresh-pw"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "jane@example.com" {
		t.Fatalf("reset must notify the account email, got %v", mailer.sent)
	}
	if !utils.CheckPassword(user.Password, "fresh-pw") {
		t.Fatalf("password must be updated before notification")
	}
}

func TestResetPasswordSurvivesMailerFailure(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newUserServiceUnderTest(t, repo, mailer)
	user := seedActiveUser(t, repo, "jane@example.com", "old-pw")

	if err := svc.ResetPassword(context.Background(), "jane@example.com", "fresh-pw"); err != nil {
		t.Fatalf("mail failure must not fail the reset, got %v", err)
	}
	if !utils.CheckPassword(user.Password, "fresh-pw") {
		t.Fatalf("password change must stick despite the mail failure")
	}
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})

	err := svc.ResetPassword(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(t, repo, &fakeMailer{})

	if err := svc.DeleteUser(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
