package graph

import (
	"time"

	"bulletin/internal/domain/entity"
	"bulletin/internal/errors"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Node property names shared by the Cypher statements and the mappers.
const (
	propID               = "id"
	propName             = "name"
	propEmail            = "email"
	propHashedPassword   = "hashed_password"
	propPasswordUpdated  = "password_updated_at"
	propCreatorID        = "creator_id"
	propTitle            = "title"
	propDescription      = "description"
	propContactEmail     = "contactEmail"
	propContactPhone     = "contactPhone"
	propEventDate        = "eventDate"
	propEventTime        = "eventTime"
	propVenue            = "venue"
	propOrganizer        = "organizer"
	propMaxAttendees     = "maxAttendees"
	propCurrentAttendees = "current_attendees"
	propCompany          = "company"
	propSalary           = "salary"
	propLocation         = "location"
	propJobType          = "jobType"
	propRequirements     = "requirements"
	propStatus           = "status"
	propCreatedAt        = "created_at"
	propUpdatedAt        = "updated_at"
)

func recordNode(record *neo4j.Record, key string) (neo4j.Node, error) {
	node, isNil, err := neo4j.GetRecordValue[neo4j.Node](record, key)
	if err != nil {
		return neo4j.Node{}, errors.Wrapf(err, "record key %s", key)
	}
	if isNil {
		return neo4j.Node{}, errors.Errorf("record key %s is null", key)
	}

	return node, nil
}

func nodeToUser(node neo4j.Node) (*entity.User, error) {
	id, err := uuidProp(node.Props, propID)
	if err != nil {
		return nil, err
	}
	createdAt := timeProp(node.Props, propCreatedAt)

	return &entity.User{
		ID:        id,
		Name:      stringProp(node.Props, propName),
		Email:     stringProp(node.Props, propEmail),
		CreatedAt: createdAt,
		UpdatedAt: timePropOr(node.Props, propUpdatedAt, createdAt),
	}, nil
}

func nodeToCredential(node neo4j.Node) (*entity.Credential, error) {
	id, err := uuidProp(node.Props, propID)
	if err != nil {
		return nil, err
	}

	return &entity.Credential{
		UserID:       id,
		Email:        stringProp(node.Props, propEmail),
		PasswordHash: stringProp(node.Props, propHashedPassword),
		UpdatedAt:    timePropOr(node.Props, propPasswordUpdated, timeProp(node.Props, propCreatedAt)),
	}, nil
}

func nodeToEvent(node neo4j.Node) (*entity.Event, error) {
	id, err := uuidProp(node.Props, propID)
	if err != nil {
		return nil, err
	}
	creatorID, err := uuidProp(node.Props, propCreatorID)
	if err != nil {
		return nil, err
	}
	createdAt := timeProp(node.Props, propCreatedAt)

	return &entity.Event{
		ID:               id,
		CreatorID:        creatorID,
		Title:            stringProp(node.Props, propTitle),
		Description:      stringProp(node.Props, propDescription),
		ContactEmail:     stringProp(node.Props, propContactEmail),
		ContactPhone:     optionalStringProp(node.Props, propContactPhone),
		EventDate:        stringProp(node.Props, propEventDate),
		EventTime:        stringProp(node.Props, propEventTime),
		Venue:            stringProp(node.Props, propVenue),
		Organizer:        stringProp(node.Props, propOrganizer),
		MaxAttendees:     optionalIntProp(node.Props, propMaxAttendees),
		CurrentAttendees: intProp(node.Props, propCurrentAttendees),
		Status:           entity.EventStatus(stringProp(node.Props, propStatus)),
		CreatedAt:        createdAt,
		UpdatedAt:        timePropOr(node.Props, propUpdatedAt, createdAt),
	}, nil
}

func nodeToJob(node neo4j.Node) (*entity.Job, error) {
	id, err := uuidProp(node.Props, propID)
	if err != nil {
		return nil, err
	}
	creatorID, err := uuidProp(node.Props, propCreatorID)
	if err != nil {
		return nil, err
	}
	createdAt := timeProp(node.Props, propCreatedAt)

	return &entity.Job{
		ID:           id,
		CreatorID:    creatorID,
		Title:        stringProp(node.Props, propTitle),
		Description:  stringProp(node.Props, propDescription),
		ContactEmail: stringProp(node.Props, propContactEmail),
		ContactPhone: optionalStringProp(node.Props, propContactPhone),
		Company:      stringProp(node.Props, propCompany),
		Salary:       stringProp(node.Props, propSalary),
		Location:     stringProp(node.Props, propLocation),
		JobType:      entity.JobType(stringProp(node.Props, propJobType)),
		Requirements: optionalStringProp(node.Props, propRequirements),
		Status:       entity.JobStatus(stringProp(node.Props, propStatus)),
		CreatedAt:    createdAt,
		UpdatedAt:    timePropOr(node.Props, propUpdatedAt, createdAt),
	}, nil
}

// eventProps holds every mutable event property. A nil value removes the property under SET +=.
func eventProps(event *entity.Event) map[string]any {
	return map[string]any{
		propTitle:            event.Title,
		propDescription:      event.Description,
		propContactEmail:     event.ContactEmail,
		propContactPhone:     optional(event.ContactPhone),
		propEventDate:        event.EventDate,
		propEventTime:        event.EventTime,
		propVenue:            event.Venue,
		propOrganizer:        event.Organizer,
		propMaxAttendees:     optional(event.MaxAttendees),
		propCurrentAttendees: int64(event.CurrentAttendees),
		propStatus:           string(event.Status),
		propUpdatedAt:        event.UpdatedAt.UTC(),
	}
}

func jobProps(job *entity.Job) map[string]any {
	return map[string]any{
		propTitle:        job.Title,
		propDescription:  job.Description,
		propContactEmail: job.ContactEmail,
		propContactPhone: optional(job.ContactPhone),
		propCompany:      job.Company,
		propSalary:       job.Salary,
		propLocation:     job.Location,
		propJobType:      string(job.JobType),
		propRequirements: optional(job.Requirements),
		propStatus:       string(job.Status),
		propUpdatedAt:    job.UpdatedAt.UTC(),
	}
}

// withIdentity adds the immutable properties written only at creation.
func withIdentity(props map[string]any, id, creatorID uuid.UUID, createdAt time.Time) map[string]any {
	props[propID] = id.String()
	props[propCreatorID] = creatorID.String()
	props[propCreatedAt] = createdAt.UTC()

	return props
}

func optional[T any](value *T) any {
	if value == nil {
		return nil
	}

	return *value
}

func stringProp(props map[string]any, key string) string {
	value, _ := props[key].(string)

	return value
}

func optionalStringProp(props map[string]any, key string) *string {
	value, ok := props[key].(string)
	if !ok {
		return nil
	}

	return &value
}

func intProp(props map[string]any, key string) int {
	value, _ := props[key].(int64)

	return int(value)
}

func optionalIntProp(props map[string]any, key string) *int {
	value, ok := props[key].(int64)
	if !ok {
		return nil
	}
	converted := int(value)

	return &converted
}

func uuidProp(props map[string]any, key string) (uuid.UUID, error) {
	raw, ok := props[key].(string)
	if !ok {
		return uuid.Nil, errors.Errorf("node property %s is missing", key)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "node property %s", key)
	}

	return id, nil
}

// timeProp accepts zoned and local datetimes as well as RFC 3339 strings.
func timeProp(props map[string]any, key string) time.Time {
	switch value := props[key].(type) {
	case time.Time:
		return value.UTC()
	case dbtype.LocalDateTime:
		return value.Time().UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}
		}

		return parsed.UTC()
	default:
		return time.Time{}
	}
}

func timePropOr(props map[string]any, key string, fallback time.Time) time.Time {
	if value := timeProp(props, key); !value.IsZero() {
		return value
	}

	return fallback
}
