package app

import (
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/internal/petcare/resilience"
)

// Dependencies - хранилища и внешние сервисы, нужные сценариям.
// Geocoder может быть nil.
type Dependencies struct {
	Animals      repositories.AnimalRepository
	Shelters     repositories.ShelterRepository
	Users        repositories.UserRepository
	Donations    repositories.DonationRepository
	Applications repositories.AdoptionApplicationRepository
	LostPets     repositories.LostPetRepository

	VolunteerTasks repositories.VolunteerTaskRepository
	Articles       repositories.ArticleRepository
	AidRequests    repositories.AnimalAidRequestRepository
	SuccessStories repositories.SuccessStoryRepository

	Slugs     services.SlugRegistry
	Passwords services.PasswordService
	Storage   services.FileStorage
	Payments  services.PaymentProcessor
	Geocoder  services.GeolocationService

	PaymentResilience *resilience.ServiceResilience
}

// UseCases объединяет все сценарии сервиса.
type UseCases struct {
	Adoptions      api.AdoptionUseCase
	Donations      api.DonationUseCase
	Shelters       api.ShelterUseCase
	Animals        api.AnimalUseCase
	Users          api.UserUseCase
	LostPets       api.LostPetUseCase
	VolunteerTasks api.VolunteerTaskUseCase
	Articles       api.ArticleUseCase
	AnimalAid      api.AnimalAidUseCase
	SuccessStories api.SuccessStoryUseCase
}

// NewUseCases создает сценарии, фиксирующие изменения через общий committer.
func NewUseCases(deps Dependencies, committer *Committer) *UseCases {
	return &UseCases{
		Adoptions:      NewAdoptionUseCase(deps.Applications, deps.Animals, committer),
		Donations:      NewDonationUseCase(deps.Donations, deps.Payments, deps.PaymentResilience, committer),
		Shelters:       NewShelterUseCase(deps.Shelters, deps.Slugs, deps.Geocoder, committer),
		Animals:        NewAnimalUseCase(deps.Animals, deps.Slugs, deps.Storage, committer),
		Users:          NewUserUseCase(deps.Users, deps.Passwords, committer),
		LostPets:       NewLostPetUseCase(deps.LostPets, deps.Slugs, committer),
		VolunteerTasks: NewVolunteerTaskUseCase(deps.VolunteerTasks, committer),
		Articles:       NewArticleUseCase(deps.Articles, deps.Slugs, committer),
		AnimalAid:      NewAnimalAidUseCase(deps.AidRequests, committer),
		SuccessStories: NewSuccessStoryUseCase(deps.SuccessStories, deps.Animals, committer),
	}
}
