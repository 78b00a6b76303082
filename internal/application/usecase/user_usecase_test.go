package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/application/usecase"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/inventario-api/pkg/jwt"
)

// fakeUserRepo almacén de usuarios en memoria.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	v := *u
	r.users[u.ID] = &v
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	v := *u
	return &v, nil
}

func (r *fakeUserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			v := *u
			return &v, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		v := *u
		out = append(out, &v)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	v := *u
	r.users[u.ID] = &v
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func newUserUC(repo *fakeUserRepo) *usecase.UserUseCase {
	return usecase.NewUserUseCase(repo, usecase.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 30,
		Issuer:     "inventario-api-test",
	})
}

// El alta hashea la contraseña (nunca se guarda en claro) y aplica el rol default.
func TestUserCreate_HasheaYRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUserUC(repo)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{Name: "ana", Password: "s3creta"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Name)
	assert.Equal(t, entity.RoleEmployee, out.Role)

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3creta", stored.PasswordHash, "la contraseña no debe persistirse en claro")
	assert.NotEmpty(t, stored.PasswordHash)
}

// Nombre repetido → ErrDuplicate.
func TestUserCreate_NombreDuplicado(t *testing.T) {
	uc := newUserUC(newFakeUserRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Password: "x"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Login correcto emite un JWT con id, nombre y rol del usuario.
func TestUserLogin_EmiteTokenConClaims(t *testing.T) {
	uc := newUserUC(newFakeUserRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Password: "s3creta", Role: "Admin"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Name: "ana", Password: "s3creta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)

	userID, name, role, err := pkgjwt.Parse("secreto-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "ana", name)
	assert.Equal(t, "Admin", role)
}

// Contraseña incorrecta o usuario inexistente → ErrUnauthorized, sin distinguir caso.
func TestUserLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUserUC(newFakeUserRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Name: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Name: "nadie", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// La edición con contraseña nueva re-hashea; el login viejo deja de valer.
func TestUserUpdate_RotaContrasena(t *testing.T) {
	uc := newUserUC(newFakeUserRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Password: "vieja"})
	require.NoError(t, err)

	nueva := "nueva"
	_, err = uc.Update(ctx, created.ID, dto.UpdateUserRequest{Password: &nueva})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Name: "ana", Password: "vieja"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Name: "ana", Password: "nueva"})
	assert.NoError(t, err)
}
