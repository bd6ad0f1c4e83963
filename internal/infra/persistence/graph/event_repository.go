package graph

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	createEventCypher = `CREATE (e:Event $props) RETURN e`
	linkEventCypher   = `
MATCH (u:User {id: $creator_id}), (e:Event {id: $id})
CREATE (u)-[:CREATED]->(e)`
	findEventCypher   = `MATCH (e:Event {id: $id}) RETURN e`
	listEventsCypher  = `MATCH (e:Event) RETURN e ORDER BY e.created_at DESC`
	updateEventCypher = `
MATCH (e:Event {id: $id})
SET e += $props
RETURN e`
	deleteEventCypher = `
MATCH (e:Event {id: $id})
DETACH DELETE e
RETURN count(*) AS deleted`
)

type eventRepository struct {
	exec executor
}

func NewEventRepository(client *Client) repository.EventRepository {
	return &eventRepository{exec: client.executor()}
}

// Create stores the node and links it to its creator in the same transaction.
func (repo *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	props := withIdentity(eventProps(event), event.ID, event.CreatorID, event.CreatedAt)
	_, err := repo.exec.execute(ctx, neo4j.AccessModeWrite, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := run(ctx, tx, createEventCypher, map[string]any{"props": props}); err != nil {
			return nil, err
		}

		return run(ctx, tx, linkEventCypher, map[string]any{
			propID:        event.ID.String(),
			propCreatorID: event.CreatorID.String(),
		})
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create event")
	}

	return nil
}

func (repo *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, findEventCypher, map[string]any{propID: id.String()})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find event")
	}
	if len(records) == 0 {
		return nil, repository.ErrEventNotFound
	}

	return recordToEvent(records[0])
}

func (repo *eventRepository) List(ctx context.Context) ([]*entity.Event, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, listEventsCypher, nil)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list events")
	}

	events := make([]*entity.Event, 0, len(records))
	for _, record := range records {
		event, err := recordToEvent(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (repo *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, updateEventCypher, map[string]any{
		propID:  event.ID.String(),
		"props": eventProps(event),
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update event")
	}
	if len(records) == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

func (repo *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, deleteEventCypher, map[string]any{propID: id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete event")
	}

	deleted, err := deletedCount(records)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete event")
	}
	if deleted == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

func recordToEvent(record *neo4j.Record) (*entity.Event, error) {
	node, err := recordNode(record, "e")
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode event")
	}

	event, err := nodeToEvent(node)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode event")
	}

	return event, nil
}
