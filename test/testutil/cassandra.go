package testutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/cassandra"
)

// PersonTableCQL creates the person table used by the DAO.
const PersonTableCQL = `
	CREATE TABLE IF NOT EXISTS person (
		first_name text,
		last_name text,
		age int,
		interesting_dates set<timestamp>,
		PRIMARY KEY (first_name, last_name)
	)`

// CassandraContainer wraps a Cassandra test container.
type CassandraContainer struct {
	Container *cassandra.CassandraContainer
	Host      string
	Port      int
	Keyspace  string
	Session   *gocql.Session
}

// CassandraOptions configures the Cassandra container.
type CassandraOptions struct {
	// Image is the Cassandra image to use. Defaults to "cassandra:4.1".
	Image string
	// Keyspace is the keyspace to create. Defaults to "people".
	Keyspace string
}

// DefaultCassandraOptions returns default options for Cassandra container.
func DefaultCassandraOptions() CassandraOptions {
	return CassandraOptions{
		Image:    "cassandra:4.1",
		Keyspace: "people",
	}
}

// StartCassandra starts a Cassandra container with the person table.
//
// The caller must call Terminate when done. StartCassandra is meant to be
// called once from TestMain and shared across tests.
//
// Parameters:
//   - ctx: Context for container operations
//   - opts: Optional configuration (nil uses defaults)
//
// Returns:
//   - *CassandraContainer: Container with connection details and an admin session
//   - error: Error if container fails to start
func StartCassandra(ctx context.Context, opts *CassandraOptions) (*CassandraContainer, error) {
	if opts == nil {
		defaultOpts := DefaultCassandraOptions()
		opts = &defaultOpts
	}

	container, err := cassandra.Run(ctx, opts.Image,
		testcontainers.WithEnv(map[string]string{
			"HEAP_NEWSIZE":     "128M",
			"MAX_HEAP_SIZE":    "512M",
			"CASSANDRA_SNITCH": "SimpleSnitch",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start Cassandra container: %w", err)
	}

	c := &CassandraContainer{
		Container: container,
		Keyspace:  opts.Keyspace,
	}

	if err := c.connect(ctx); err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}

	return c, nil
}

func (c *CassandraContainer) connect(ctx context.Context) error {
	hostPort, err := c.Container.ConnectionHost(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection host: %w", err)
	}

	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil {
		return fmt.Errorf("failed to parse connection host %q: %w", hostPort, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("failed to parse port %q: %w", portStr, err)
	}

	cluster := gocql.NewCluster(host)
	cluster.Port = port
	cluster.Consistency = gocql.One
	cluster.Timeout = 60 * time.Second
	cluster.ConnectTimeout = 60 * time.Second
	cluster.DisableInitialHostLookup = true

	// Wait for Cassandra to be ready and connect to system keyspace
	cluster.Keyspace = "system"
	var session *gocql.Session
	for i := 0; i < 10; i++ {
		session, err = cluster.CreateSession()
		if err == nil {
			break
		}
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("failed to create session after retries: %w", err)
	}

	createKeyspaceQuery := fmt.Sprintf(`
		CREATE KEYSPACE IF NOT EXISTS %s
		WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}
	`, c.Keyspace)

	if err := session.Query(createKeyspaceQuery).WithContext(ctx).Exec(); err != nil {
		session.Close()
		return fmt.Errorf("failed to create keyspace: %w", err)
	}

	session.Close()

	cluster.Keyspace = c.Keyspace
	session, err = cluster.CreateSession()
	if err != nil {
		return fmt.Errorf("failed to create session for keyspace %s: %w", c.Keyspace, err)
	}

	if err := session.Query(PersonTableCQL).WithContext(ctx).Exec(); err != nil {
		session.Close()
		return fmt.Errorf("failed to create person table: %w", err)
	}

	c.Host = host
	c.Port = port
	c.Session = session

	return nil
}

// Terminate closes the admin session and stops the container.
func (c *CassandraContainer) Terminate(ctx context.Context) error {
	if c.Session != nil {
		c.Session.Close()
	}

	return c.Container.Terminate(ctx)
}

// TruncatePeople empties the person table.
func (c *CassandraContainer) TruncatePeople(t *testing.T) {
	t.Helper()

	if err := c.Session.Query("TRUNCATE person").Exec(); err != nil {
		t.Fatalf("failed to truncate person table: %v", err)
	}
}
