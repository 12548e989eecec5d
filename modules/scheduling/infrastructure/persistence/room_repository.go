package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/entities/room"
	"github.com/formatix/erp/pkg/composables"
	"github.com/formatix/erp/pkg/repo"
)

const roomFindQuery = `SELECT id, name, capacity FROM rooms`

type RoomRepository struct{}

func NewRoomRepository() room.Repository {
	return &RoomRepository{}
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]room.Room, error) {
	return r.queryRooms(ctx, repo.Join(roomFindQuery, "ORDER BY name, id"))
}

func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (room.Room, error) {
	rooms, err := r.queryRooms(ctx, repo.Join(roomFindQuery, "WHERE id = $1"), id.String())
	if err != nil {
		return room.Room{}, err
	}
	if len(rooms) == 0 {
		return room.Room{}, room.ErrNotFound
	}
	return rooms[0], nil
}

func (r *RoomRepository) Create(ctx context.Context, value room.Room) (room.Room, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return room.Room{}, err
	}

	id := uuid.New()
	_, err = tx.Exec(
		ctx,
		"INSERT INTO rooms (id, name, capacity) VALUES ($1, $2, $3)",
		id.String(),
		value.Name(),
		value.Capacity(),
	)
	if err != nil {
		return room.Room{}, gerrors.Wrap(err, "creating room")
	}
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) queryRooms(ctx context.Context, query string, args ...interface{}) ([]room.Room, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "querying rooms")
	}
	defer rows.Close()

	var rooms []room.Room
	for rows.Next() {
		var row roomRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, toDomainRoom(row))
	}
	return rooms, rows.Err()
}
