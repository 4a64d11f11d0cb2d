package events

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrInvalidPayload   = errors.New("invalid event payload")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type registration struct {
	aggregateType string
	decode        func([]byte) (Event, error)
}

func decodeAs[T Event](payload []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func register[T Event](aggregateType string) registration {
	return registration{aggregateType: aggregateType, decode: decodeAs[T]}
}

// registry перечисляет все варианты событий.
var registry = map[string]registration{
	TypeAnimalCreated:                     register[AnimalCreated](AggregateAnimal),
	TypeAnimalStatusChanged:               register[AnimalStatusChanged](AggregateAnimal),
	TypeAnimalAdopted:                     register[AnimalAdopted](AggregateAnimal),
	TypeAnimalMicrochipAttached:           register[AnimalMicrochipAttached](AggregateAnimal),
	TypeAnimalMediaAdded:                  register[AnimalMediaAdded](AggregateAnimal),
	TypeAnimalMediaRemoved:                register[AnimalMediaRemoved](AggregateAnimal),
	TypeAnimalCharacteristicsUpdated:      register[AnimalCharacteristicsUpdated](AggregateAnimal),
	TypeAnimalAdoptionRequirementsUpdated: register[AnimalAdoptionRequirementsUpdated](AggregateAnimal),
	TypeAnimalDescriptionUpdated:          register[AnimalDescriptionUpdated](AggregateAnimal),
	TypeAnimalMedicalFlagsUpdated:         register[AnimalMedicalFlagsUpdated](AggregateAnimal),

	TypeShelterCreated:            register[ShelterCreated](AggregateShelter),
	TypeShelterAnimalAdded:        register[ShelterAnimalAdded](AggregateShelter),
	TypeShelterAnimalRemoved:      register[ShelterAnimalRemoved](AggregateShelter),
	TypeShelterCapacityChanged:    register[ShelterCapacityChanged](AggregateShelter),
	TypeShelterContactsUpdated:    register[ShelterContactsUpdated](AggregateShelter),
	TypeShelterPhotoAdded:         register[ShelterPhotoAdded](AggregateShelter),
	TypeShelterPhotoRemoved:       register[ShelterPhotoRemoved](AggregateShelter),
	TypeShelterSocialMediaUpdated: register[ShelterSocialMediaUpdated](AggregateShelter),

	TypeUserCreated:             register[UserCreated](AggregateUser),
	TypeUserProfileUpdated:      register[UserProfileUpdated](AggregateUser),
	TypeUserEmailChanged:        register[UserEmailChanged](AggregateUser),
	TypeUserPasswordChanged:     register[UserPasswordChanged](AggregateUser),
	TypeUserRoleChanged:         register[UserRoleChanged](AggregateUser),
	TypeUserPointsAdded:         register[UserPointsAdded](AggregateUser),
	TypeUserPointsDeducted:      register[UserPointsDeducted](AggregateUser),
	TypeUserLoggedIn:            register[UserLoggedIn](AggregateUser),
	TypeUserShelterSubscribed:   register[UserShelterSubscribed](AggregateUser),
	TypeUserShelterUnsubscribed: register[UserShelterUnsubscribed](AggregateUser),
	TypeUserPreferenceSet:       register[UserPreferenceSet](AggregateUser),

	TypeDonationCreated:            register[DonationCreated](AggregateDonation),
	TypeDonationStatusChanged:      register[DonationStatusChanged](AggregateDonation),
	TypeDonationCompleted:          register[DonationCompleted](AggregateDonation),
	TypeDonationFailed:             register[DonationFailed](AggregateDonation),
	TypeRecurringDonationScheduled: register[RecurringDonationScheduled](AggregateDonation),
	TypeDonationReportUpdated:      register[DonationReportUpdated](AggregateDonation),
	TypeDonationTransactionIDSet:   register[DonationTransactionIDSet](AggregateDonation),

	TypeAdoptionApplicationCreated:       register[AdoptionApplicationCreated](AggregateAdoptionApplication),
	TypeAdoptionApplicationStatusChanged: register[AdoptionApplicationStatusChanged](AggregateAdoptionApplication),
	TypeAdoptionApplicationApproved:      register[AdoptionApplicationApproved](AggregateAdoptionApplication),
	TypeAdoptionApplicationRejected:      register[AdoptionApplicationRejected](AggregateAdoptionApplication),
	TypeAdoptionApplicationNotesUpdated:  register[AdoptionApplicationNotesUpdated](AggregateAdoptionApplication),

	TypeLostPetReported:        register[LostPetReported](AggregateLostPet),
	TypeLostPetStatusChanged:   register[LostPetStatusChanged](AggregateLostPet),
	TypeLostPetMicrochipSet:    register[LostPetMicrochipSet](AggregateLostPet),
	TypeLostPetLastSeenUpdated: register[LostPetLastSeenUpdated](AggregateLostPet),
	TypeLostPetRewardUpdated:   register[LostPetRewardUpdated](AggregateLostPet),
	TypeLostPetPhotoAdded:      register[LostPetPhotoAdded](AggregateLostPet),

	TypeVolunteerTaskCreated:       register[VolunteerTaskCreated](AggregateVolunteerTask),
	TypeVolunteerTaskStatusUpdated: register[VolunteerTaskStatusUpdated](AggregateVolunteerTask),
	TypeVolunteerTaskInfoUpdated:   register[VolunteerTaskInfoUpdated](AggregateVolunteerTask),
	TypeVolunteerTaskSkillSet:      register[VolunteerTaskSkillSet](AggregateVolunteerTask),
	TypeVolunteerTaskSkillRemoved:  register[VolunteerTaskSkillRemoved](AggregateVolunteerTask),

	TypeArticleCreated:   register[ArticleCreated](AggregateArticle),
	TypeArticleUpdated:   register[ArticleUpdated](AggregateArticle),
	TypeArticlePublished: register[ArticlePublished](AggregateArticle),
	TypeArticleArchived:  register[ArticleArchived](AggregateArticle),

	TypeAnimalAidRequested:     register[AnimalAidRequested](AggregateAnimalAidRequest),
	TypeAnimalAidStatusChanged: register[AnimalAidStatusChanged](AggregateAnimalAidRequest),
	TypeAnimalAidCostUpdated:   register[AnimalAidCostUpdated](AggregateAnimalAidRequest),
	TypeAnimalAidPhotoAdded:    register[AnimalAidPhotoAdded](AggregateAnimalAidRequest),
	TypeAnimalAidPhotoRemoved:  register[AnimalAidPhotoRemoved](AggregateAnimalAidRequest),

	TypeSuccessStoryPublished:    register[SuccessStoryPublished](AggregateSuccessStory),
	TypeSuccessStoryUpdated:      register[SuccessStoryUpdated](AggregateSuccessStory),
	TypeSuccessStoryViewed:       register[SuccessStoryViewed](AggregateSuccessStory),
	TypeSuccessStoryMediaAdded:   register[SuccessStoryMediaAdded](AggregateSuccessStory),
	TypeSuccessStoryMediaRemoved: register[SuccessStoryMediaRemoved](AggregateSuccessStory),
}

// Marshal сериализует событие в JSON вместе с полями конверта.
func Marshal(e Event) ([]byte, error) {
	if _, ok := registry[e.EventType()]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, e.EventType())
	}
	return json.Marshal(e)
}

// Unmarshal восстанавливает событие по имени типа.
func Unmarshal(eventType string, payload []byte) (Event, error) {
	reg, ok := registry[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}
	e, err := reg.decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, eventType, err)
	}
	return e, nil
}

// AggregateTypeOf возвращает тип агрегата, породившего событие.
func AggregateTypeOf(e Event) (string, error) {
	reg, ok := registry[e.EventType()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEventType, e.EventType())
	}
	return reg.aggregateType, nil
}

// Types возвращает имена всех зарегистрированных типов событий.
func Types() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	return types
}
