package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-graphql-api/internal/model"
	"appointment-graphql-api/internal/store"
)

func setup(t *testing.T) (*store.Store, *pgxpool.Pool) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, store.Migrate(pool))

	st := store.New(pool)
	require.NoError(t, st.VerifySchema(context.Background()))
	return st, pool
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

func TestCreateAppointment(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	purpose := "Checkup"
	name := uniqueName("Jane Doe")
	a, err := st.CreateAppointment(ctx, model.NewAppointment{
		PatientName:     name,
		PatientEmail:    "jane@example.com",
		AppointmentDate: "2024-05-01",
		Purpose:         &purpose,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, name, a.PatientName)
	assert.Equal(t, "jane@example.com", a.PatientEmail)
	assert.Equal(t, "2024-05-01", a.AppointmentDate)
	require.NotNil(t, a.Purpose)
	assert.Equal(t, "Checkup", *a.Purpose)
}

func TestCreateWithoutPurpose(t *testing.T) {
	st, _ := setup(t)

	a, err := st.CreateAppointment(context.Background(), model.NewAppointment{
		PatientName:     uniqueName("John Roe"),
		PatientEmail:    "john@example.com",
		AppointmentDate: "2024-06-02",
	})
	require.NoError(t, err)
	assert.Nil(t, a.Purpose)
}

func TestListIncludesCreated(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	a, err := st.CreateAppointment(ctx, model.NewAppointment{
		PatientName:     uniqueName("Listed"),
		PatientEmail:    "listed@example.com",
		AppointmentDate: "2024-07-03",
	})
	require.NoError(t, err)

	first, err := st.ListAppointments(ctx)
	require.NoError(t, err)
	second, err := st.ListAppointments(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, first, second)

	var found int
	for _, row := range first {
		if row.ID == a.ID {
			found++
			assert.Equal(t, *a, row)
		}
	}
	assert.Equal(t, 1, found)
}

func TestCreateFailsOnClosedPool(t *testing.T) {
	_, pool := setup(t)
	st := store.New(pool)
	pool.Close()

	name := uniqueName("Ghost")
	_, err := st.CreateAppointment(context.Background(), model.NewAppointment{
		PatientName: name, PatientEmail: "ghost@example.com", AppointmentDate: "2024-01-01",
	})
	require.Error(t, err)

	// fresh pool to confirm nothing was written
	pool2, err := pgxpool.New(context.Background(), os.Getenv("DATABASE_URL"))
	require.NoError(t, err)
	defer pool2.Close()
	var n int
	require.NoError(t, pool2.QueryRow(context.Background(),
		`SELECT count(*) FROM appointments WHERE patient_name = $1`, name).Scan(&n))
	assert.Zero(t, n)
}

func TestObserverSeesStatements(t *testing.T) {
	_, pool := setup(t)

	var observed []string
	st := store.New(pool, store.WithObserver(func(stmt string, d time.Duration) {
		observed = append(observed, stmt)
	}))
	require.NoError(t, st.VerifySchema(context.Background()))

	_, err := st.ListAppointments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"list_appointments"}, observed)
}

func TestPing(t *testing.T) {
	st, _ := setup(t)
	assert.NoError(t, st.Ping(context.Background()))
}

func TestMigrateReleasesConnections(t *testing.T) {
	_, pool := setup(t)
	assert.Zero(t, pool.Stat().AcquiredConns())

	// second run has nothing to apply
	require.NoError(t, store.Migrate(pool))
	assert.Zero(t, pool.Stat().AcquiredConns())

	closed := make(chan struct{})
	go func() {
		pool.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("pool.Close blocked on a connection still held after Migrate")
	}
}
