package service_test

import (
	"context"
	"testing"
	"time"

	. "mygene/pkg/test"

	"mygene/internal/adapter/database/sqlite/repository"
	"mygene/internal/core/domain"
	"mygene/internal/core/port"
	"mygene/internal/core/service"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	ProfileRepo port.ProfileRepository
	UserRepo    port.UserRepository
	Service     port.ProfileService
}

func (s *ProfileServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.ProfileRepo = repository.NewProfileRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db, nil)
	s.Service = service.NewProfileService(s.ProfileRepo, nil)
}

func TestProfileServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ProfileServiceTestSuite))
}

func (s *ProfileServiceTestSuite) createOwner(email string) domain.User {
	user, err := s.UserRepo.Create(context.Background(), domain.User{
		UUID:  uuid.New(),
		Name:  "Owner",
		Email: email,
	})

	Expect(err).To(BeNil())

	return user
}

func mustDate(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func validProfile(name string) domain.Profile {
	return domain.Profile{
		Name:          name,
		BirthDate:     mustDate("1930-05-01"),
		DeathDate:     mustDate("2001-11-20"),
		FamilyDetails: "Married with two children.",
		BurialInfo:    "Cremated, ashes kept by the family.",
	}
}

func (s *ProfileServiceTestSuite) TestCreateAssignsCodeAndOwner() {
	owner := s.createOwner("owner@example.com")

	created, err := s.Service.Create(context.Background(), validProfile("Antonio Silva"), owner.ID)

	Expect(err).To(BeNil())
	Expect(created.Code).To(MatchRegexp("^[0-9a-f]{32}$"))
	Expect(created.SubmittedBy).To(Equal(owner.ID))

	stored, err := s.Service.GetByCode(context.Background(), created.Code)
	Expect(err).To(BeNil())
	Expect(stored.Name).To(Equal("Antonio Silva"))
}

func (s *ProfileServiceTestSuite) TestCreateIgnoresClientProvidedOwner() {
	owner := s.createOwner("owner@example.com")

	profile := validProfile("Clara Dias")
	profile.SubmittedBy = 9999

	created, err := s.Service.Create(context.Background(), profile, owner.ID)

	Expect(err).To(BeNil())
	Expect(created.SubmittedBy).To(Equal(owner.ID))
}

func (s *ProfileServiceTestSuite) TestUpdateByOwnerMergesFields() {
	owner := s.createOwner("owner@example.com")

	created, _ := s.Service.Create(context.Background(), validProfile("Pedro Costa"), owner.ID)

	updated, err := s.Service.UpdateByCode(context.Background(), created.Code, owner.ID, domain.Profile{
		Occupation: "Fisherman",
	})

	Expect(err).To(BeNil())
	Expect(updated.Occupation).To(Equal("Fisherman"))
	Expect(updated.Name).To(Equal("Pedro Costa"))
	Expect(updated.Code).To(Equal(created.Code))
}

func (s *ProfileServiceTestSuite) TestUpdateWithEmptyPartialKeepsRecord() {
	owner := s.createOwner("owner@example.com")

	created, _ := s.Service.Create(context.Background(), validProfile("Rosa Lima"), owner.ID)

	updated, err := s.Service.UpdateByCode(context.Background(), created.Code, owner.ID, domain.Profile{})

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal(created.Name))
	Expect(updated.FamilyDetails).To(Equal(created.FamilyDetails))
	Expect(updated.BurialInfo).To(Equal(created.BurialInfo))
}

func (s *ProfileServiceTestSuite) TestUpdateByNonOwnerFails() {
	owner := s.createOwner("owner@example.com")
	intruder := s.createOwner("intruder@example.com")

	created, _ := s.Service.Create(context.Background(), validProfile("Helena Rocha"), owner.ID)

	_, err := s.Service.UpdateByCode(context.Background(), created.Code, intruder.ID, domain.Profile{
		Name: "Hijacked",
	})

	Expect(err).To(MatchError(domain.ErrNotOwner))

	stored, _ := s.Service.GetByCode(context.Background(), created.Code)
	Expect(stored.Name).To(Equal("Helena Rocha"))
}

func (s *ProfileServiceTestSuite) TestUpdateMissingProfile() {
	owner := s.createOwner("owner@example.com")

	_, err := s.Service.UpdateByCode(context.Background(), "0123456789abcdef0123456789abcdef", owner.ID, domain.Profile{})

	Expect(err).To(MatchError(domain.ErrProfileNotFound))
}

func (s *ProfileServiceTestSuite) TestDeleteByOwner() {
	owner := s.createOwner("owner@example.com")

	created, _ := s.Service.Create(context.Background(), validProfile("Luiz Alves"), owner.ID)

	err := s.Service.DeleteByCode(context.Background(), created.Code, owner.ID)
	Expect(err).To(BeNil())

	_, err = s.Service.GetByCode(context.Background(), created.Code)
	Expect(err).To(MatchError(domain.ErrProfileNotFound))
}

func (s *ProfileServiceTestSuite) TestDeleteByNonOwnerFails() {
	owner := s.createOwner("owner@example.com")
	intruder := s.createOwner("intruder@example.com")

	created, _ := s.Service.Create(context.Background(), validProfile("Paula Nunes"), owner.ID)

	err := s.Service.DeleteByCode(context.Background(), created.Code, intruder.ID)
	Expect(err).To(MatchError(domain.ErrNotOwner))

	_, err = s.Service.GetByCode(context.Background(), created.Code)
	Expect(err).To(BeNil())
}

func (s *ProfileServiceTestSuite) TestListViewFiltersAndSorts() {
	owner := s.createOwner("owner@example.com")

	s.Service.Create(context.Background(), validProfile("Alberto Melo"), owner.ID)
	s.Service.Create(context.Background(), validProfile("Zilda Melo"), owner.ID)
	s.Service.Create(context.Background(), validProfile("Bruno Faria"), owner.ID)

	all, err := s.Service.ListView(context.Background(), "", domain.SortNameAsc)
	Expect(err).To(BeNil())
	Expect(all).To(HaveLen(3))
	Expect(all[0].Name).To(Equal("Alberto Melo"))
	Expect(all[2].Name).To(Equal("Zilda Melo"))

	filtered, err := s.Service.ListView(context.Background(), "melo", domain.SortNameDesc)
	Expect(err).To(BeNil())
	Expect(filtered).To(HaveLen(2))
	Expect(filtered[0].Name).To(Equal("Zilda Melo"))
}
