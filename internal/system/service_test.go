package system

import (
	"context"
	"testing"
	"time"

	"stellaris-server/internal/generation"
	"stellaris-server/internal/mapgen"
	"stellaris-server/internal/rng"
	"stellaris-server/internal/shared/redis"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

func TestFromSeed(t *testing.T) {
	galaxyID := uuid.New()
	seed := mapgen.PlanetarySystemSeed{
		Stream:   rng.NewStream(rng.U128(42)),
		Position: mgl32.Vec3{1, 2, 3},
		Mass:     2.5,
	}

	s := FromSeed(galaxyID, 7, seed, 0.4)
	if s.ID == uuid.Nil || s.GalaxyID != galaxyID || s.Index != 7 {
		t.Errorf("identity = %+v", s)
	}
	if s.X != 1 || s.Y != 2 || s.Z != 3 {
		t.Errorf("position = (%v, %v, %v)", s.X, s.Y, s.Z)
	}
	if s.Scale != 2.5*float32(0.4) {
		t.Errorf("scale = %v", s.Scale)
	}
	if s.StreamState != "0000000000000000000000000000002b" {
		t.Errorf("stream state = %s", s.StreamState)
	}
	if s.PlanetCount != 0 {
		t.Errorf("planet count = %d", s.PlanetCount)
	}
}

func TestListByGalaxyReadsThroughCache(t *testing.T) {
	repo, mock := newMockRepository(t)
	service := NewService(repo, redis.NewMemoryCache(), time.Minute, 0.4, discard)
	galaxyID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM planetary_systems").WithArgs(galaxyID).
		WillReturnRows(sqlmock.NewRows(systemColumns()).
			AddRow(uuid.NewString(), galaxyID.String(), 0, 1.0, 1.0, 0.0, 1.0, 0.4, "2b", 0, time.Now()))

	for i := 0; i < 2; i++ {
		systems, err := service.ListByGalaxy(context.Background(), galaxyID)
		if err != nil {
			t.Fatalf("ListByGalaxy #%d: %v", i, err)
		}
		if len(systems) != 1 {
			t.Fatalf("ListByGalaxy #%d returned %d systems", i, len(systems))
		}
	}

	// a second query would be unexpected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInstantiatorInvalidatesCache(t *testing.T) {
	repo, mock := newMockRepository(t)
	cache := redis.NewMemoryCache()
	service := NewService(repo, cache, time.Minute, 0.4, discard)
	galaxyID := uuid.New()
	ctx := context.Background()

	if err := cache.Set(ctx, cacheKey(galaxyID), []PlanetarySystem{}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	seeds := []mapgen.PlanetarySystemSeed{
		{Stream: rng.NewStream(rng.U128(1)), Mass: 1},
		{Stream: rng.NewStream(rng.U128(3)), Mass: 2},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM planetary_systems").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO planetary_systems").WithArgs(galaxyID, batchOf(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	var inst generation.Instantiator = service.ForGalaxy(galaxyID)
	if err := inst.InstantiateSystems(ctx, generation.GalaxyInfo{}, seeds); err != nil {
		t.Fatalf("InstantiateSystems: %v", err)
	}

	var cached []PlanetarySystem
	found, err := cache.Get(ctx, cacheKey(galaxyID), &cached)
	if err != nil || found {
		t.Errorf("cache entry survived insert: found=%v err=%v", found, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
