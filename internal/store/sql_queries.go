package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-dash-sync/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"user_id", "login", "name", "password", "created_at"}

func createUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(user.TableName()).
		Columns("login", "name", "password").
		Values(user.Login, user.Name, user.Password).
		Suffix("RETURNING user_id, login, name, password, created_at").
		ToSql()
}

func findUserByLoginQuery(login string) (string, []any, error) {
	return psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func getSnapshotQuery(owner string) (string, []any, error) {
	return psql.Select("payload", "updated_at").
		From("snapshots").
		Where(sq.Eq{"owner": owner}).
		ToSql()
}

func putSnapshotQuery(snapshot models.StoredSnapshot) (string, []any, error) {
	return psql.Insert("snapshots").
		Columns("owner", "payload", "updated_at").
		Values(snapshot.Owner, snapshot.Payload, snapshot.UpdatedAt).
		Suffix("ON CONFLICT (owner) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
}
