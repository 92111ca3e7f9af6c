package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
)

func shareRow(id, status string) gin.H {
	return gin.H{"_id": id, "requester_id": "t1", "owner_id": "t2", "course_id": "c1", "status": status}
}

func TestShareStoreFlow(t *testing.T) {
	var incomingQuery, respondStatus string
	b := newBackend(t, func(r *gin.Engine) {
		r.GET("/student-share/requests/incoming", func(c *gin.Context) {
			incomingQuery = c.Request.URL.RawQuery
			c.JSON(http.StatusOK, gin.H{"requests": []gin.H{shareRow("in1", "pending"), shareRow("in2", "pending")}})
		})
		r.GET("/student-share/requests/outgoing", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"requests": []gin.H{shareRow("out1", "pending")}})
		})
		r.GET("/student-share/teachers", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"teachers": []gin.H{{"_id": "t2", "name": "Dr Obi", "course_count": 3}}})
		})
		r.POST("/student-share/requests", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"request": shareRow("out2", "pending")})
		})
		r.PATCH("/student-share/requests/:id", func(c *gin.Context) {
			var in dto.ShareResponseInput
			_ = c.ShouldBindJSON(&in)
			respondStatus = in.Status
			c.JSON(http.StatusOK, gin.H{"request": shareRow(c.Param("id"), in.Status)})
		})
		r.DELETE("/student-share/requests/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "cancelled"})
		})
	})
	s := NewStudentShareStore(b.deps("tok", nil))
	ctx := context.Background()

	require.NoError(t, s.FetchIncoming(ctx, models.ShareStatusAll))
	assert.Equal(t, "", incomingQuery)
	require.NoError(t, s.FetchOutgoing(ctx, models.ShareStatusPending))
	require.NoError(t, s.FetchTeachers(ctx))

	_, err := s.CreateRequest(ctx, dto.ShareRequestInput{OwnerID: "t2", CourseID: "c1"})
	require.NoError(t, err)

	updated, err := s.Respond(ctx, "in2", true, "ok")
	require.NoError(t, err)
	assert.Equal(t, models.ShareStatusApproved, updated.Status)
	assert.Equal(t, models.ShareStatusApproved, respondStatus)

	require.NoError(t, s.Cancel(ctx, "out1"))

	snap := s.Snapshot()
	require.Len(t, snap.Incoming.Items, 2)
	assert.Equal(t, "pending", snap.Incoming.Items[0].Status)
	assert.Equal(t, "approved", snap.Incoming.Items[1].Status)
	require.Len(t, snap.Outgoing.Items, 1)
	assert.Equal(t, "out2", snap.Outgoing.Items[0].ID)
	assert.Equal(t, "Dr Obi", snap.Teachers.Items[0].Name)
}

func TestShareCreateRequiresCourse(t *testing.T) {
	b := newBackend(t, func(r *gin.Engine) {})
	s := NewStudentShareStore(b.deps("tok", nil))

	_, err := s.CreateRequest(context.Background(), dto.ShareRequestInput{OwnerID: "t2"})
	require.Error(t, err)
	assert.Equal(t, int32(0), b.Hits())
}
