package handlers

import (
	"account-core/app/server/models"
	"account-core/app/server/password"
	"account-core/app/server/types"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfileRequest() types.ProfileUpdateRequest {
	return types.ProfileUpdateRequest{
		FirstName:  "John",
		LastName:   "Doe",
		University: "Test University",
		Year:       2025,
		Speciality: "Computer Science",
		Department: "Software Engineering",
		Degree:     "Bachelor",
		Role:       "Student",
	}
}

func TestUpdateProfile_CreateAndUpdate(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "eva", IsActive: true}, "eva-password")

	// 第一次更新时懒创建资料
	c, rec := testContext(t, http.MethodPut, "/profile", validProfileRequest())
	withUser(c, user)

	require.NoError(t, a.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.ProfileResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, "John", res.FirstName)
	assert.Equal(t, "Test University", res.University)

	// 第二次更新同一行，不产生重复资料
	req := validProfileRequest()
	req.FirstName = "Johnny"
	c, rec = testContext(t, http.MethodPut, "/profile", req)
	withUser(c, user)

	require.NoError(t, a.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, a.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var profile models.Profile
	require.NoError(t, a.db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Johnny", profile.FirstName)
}

func TestUpdateProfile_VoluntaryPasswordChange(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "frank", IsActive: true}, "old-password")

	req := validProfileRequest()
	req.CurrentPassword = "old-password"
	req.NewPassword = "new-secure-password"

	c, rec := testContext(t, http.MethodPut, "/profile", req)
	withUser(c, user)

	require.NoError(t, a.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	reloaded := reloadUser(t, a, user.ID)
	assert.True(t, password.Verify("new-secure-password", reloaded.Password))
	assert.False(t, password.Verify("old-password", reloaded.Password))
}

func TestUpdateProfile_MissingCurrentPassword(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "grace", IsActive: true}, "grace-password")

	req := validProfileRequest()
	req.NewPassword = "new-secure-password"

	c, rec := testContext(t, http.MethodPut, "/profile", req)
	withUser(c, user)

	require.NoError(t, a.UpdateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "current_password_required")
}

func TestUpdateProfile_IncorrectCurrentPassword(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "heidi", IsActive: true}, "heidi-password")

	req := validProfileRequest()
	req.CurrentPassword = "wrong-password"
	req.NewPassword = "new-secure-password"

	c, rec := testContext(t, http.MethodPut, "/profile", req)
	withUser(c, user)

	require.NoError(t, a.UpdateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect_current_password")

	// 密码保持不变
	reloaded := reloadUser(t, a, user.ID)
	assert.True(t, password.Verify("heidi-password", reloaded.Password))
}

func TestUpdateProfile_ForcedReset(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "ivan", IsActive: true, HasPasswordReset: true}, "generated-password")

	// 强制重置状态下不需要 current_password
	req := validProfileRequest()
	req.NewPassword = "chosen-password"

	c, rec := testContext(t, http.MethodPut, "/profile", req)
	withUser(c, user)

	require.NoError(t, a.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// 新哈希与标志位清除一起生效
	reloaded := reloadUser(t, a, user.ID)
	assert.False(t, reloaded.HasPasswordReset)
	assert.True(t, password.Verify("chosen-password", reloaded.Password))
}

func TestUpdateProfile_InvalidFields(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "judy", IsActive: true}, "judy-password")

	tests := []struct {
		name   string
		mutate func(*types.ProfileUpdateRequest)
	}{
		{"short first name", func(r *types.ProfileUpdateRequest) { r.FirstName = "J" }},
		{"year too early", func(r *types.ProfileUpdateRequest) { r.Year = 1800 }},
		{"year too late", func(r *types.ProfileUpdateRequest) { r.Year = 2200 }},
		{"empty university", func(r *types.ProfileUpdateRequest) { r.University = "" }},
		{"short new password", func(r *types.ProfileUpdateRequest) { r.NewPassword = "123" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProfileRequest()
			tt.mutate(&req)

			c, rec := testContext(t, http.MethodPut, "/profile", req)
			withUser(c, user)

			require.NoError(t, a.UpdateProfile(c))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestResetPassword_Forced(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "kate", IsActive: true, HasPasswordReset: true}, "generated-password")

	c, rec := testContext(t, http.MethodPost, "/reset_password", &types.ResetPasswordRequest{
		NewPassword: "chosen-password",
	})
	withUser(c, user)

	require.NoError(t, a.ResetPassword(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset successfully")

	reloaded := reloadUser(t, a, user.ID)
	assert.False(t, reloaded.HasPasswordReset)
	assert.True(t, password.Verify("chosen-password", reloaded.Password))
}

func TestResetPassword_AlreadyReset(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "leo", IsActive: true}, "leo-password")

	c, rec := testContext(t, http.MethodPost, "/reset_password", &types.ResetPasswordRequest{
		NewPassword: "chosen-password",
	})
	withUser(c, user)

	require.NoError(t, a.ResetPassword(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password has already been reset")

	// 原密码保持可用
	reloaded := reloadUser(t, a, user.ID)
	assert.True(t, password.Verify("leo-password", reloaded.Password))
}

func TestUpdateAkg_Idempotent(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "mona", IsActive: true}, "mona-password")
	require.NoError(t, a.db.Create(&models.Profile{
		UserID:     user.ID,
		FirstName:  "Mona",
		LastName:   "Lisa",
		University: "Test University",
		Year:       2024,
		Role:       "Student",
		Speciality: "Arts",
		Department: "History",
		Degree:     "Master",
	}).Error)

	// 第一次确认：写入标志并返回资料
	c, rec := testContext(t, http.MethodGet, "/akg", nil)
	withUser(c, user)
	require.NoError(t, a.UpdateAkg(c))
	require.Equal(t, http.StatusOK, rec.Code)

	firstBody := rec.Body.String()
	assert.True(t, reloadUser(t, a, user.ID).IsAkg)

	// 第二次确认：状态不变，返回同样的资料
	c, rec = testContext(t, http.MethodGet, "/akg", nil)
	withUser(c, reloadUser(t, a, user.ID))
	require.NoError(t, a.UpdateAkg(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, firstBody, rec.Body.String())
	assert.True(t, reloadUser(t, a, user.ID).IsAkg)
}

func TestUpdateAkg_NoProfile(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	user := mustCreateUser(t, a, models.User{Username: "nick", IsActive: true}, "nick-password")

	c, rec := testContext(t, http.MethodGet, "/akg", nil)
	withUser(c, user)

	require.NoError(t, a.UpdateAkg(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User profile not found")

	// 确认标志与资料相互独立，404 时标志仍然生效
	assert.True(t, reloadUser(t, a, user.ID).IsAkg)
}
