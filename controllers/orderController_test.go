package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc, method string, path string, body interface{}) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, "/orders/bulkupdate", handler)
	router.Handle(method, "/orders/:order_code", handler)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestValidateStatusChange(t *testing.T) {
	reason := "Customer request"
	empty := ""

	assert.Equal(t, "", ValidateStatusChange(models.StatusProductionFloor, nil))
	assert.Equal(t, "", ValidateStatusChange(models.StatusCancelled, &reason))
	assert.NotEqual(t, "", ValidateStatusChange(models.StatusCancelled, nil))
	assert.NotEqual(t, "", ValidateStatusChange(models.StatusCancelled, &empty))
	assert.NotEqual(t, "", ValidateStatusChange("shipped", nil))
}

func TestBulkUpdateRejectsEmptyIds(t *testing.T) {
	recorder := performRequest(BulkUpdateOrders(), http.MethodPost, "/orders/bulkupdate", gin.H{
		"ids":    []string{},
		"status": models.StatusFinished,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestBulkUpdateRejectsInvalidStatus(t *testing.T) {
	recorder := performRequest(BulkUpdateOrders(), http.MethodPost, "/orders/bulkupdate", gin.H{
		"ids":    []string{"ORD-20260831-00001"},
		"status": "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestBulkUpdateRejectsCancelWithoutReason(t *testing.T) {
	recorder := performRequest(BulkUpdateOrders(), http.MethodPost, "/orders/bulkupdate", gin.H{
		"ids":    []string{"ORD-20260831-00001", "ORD-20260831-00002"},
		"status": models.StatusCancelled,
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "cancellation reason")
}

func TestUpdateOrderRejectsCancelWithoutReason(t *testing.T) {
	recorder := performRequest(UpdateOrder(), http.MethodPatch, "/orders/ORD-20260831-00001", gin.H{
		"status": models.StatusCancelled,
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "cancellation reason")
}

func TestUpdateOrderRejectsInvalidStatus(t *testing.T) {
	recorder := performRequest(UpdateOrder(), http.MethodPatch, "/orders/ORD-20260831-00001", gin.H{
		"status": "done",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateOrderRejectsInvalidPriority(t *testing.T) {
	recorder := performRequest(UpdateOrder(), http.MethodPatch, "/orders/ORD-20260831-00001", gin.H{
		"priority": "whenever",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestOrderListPipeline(t *testing.T) {
	pipeline := orderListPipeline(bson.D{{Key: "status", Value: models.StatusFinished}}, 20, 10)
	require.Len(t, pipeline, 9)

	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, "$sort", pipeline[1][0].Key)
	assert.Equal(t, "$skip", pipeline[2][0].Key)
	assert.Equal(t, 20, pipeline[2][0].Value)
	assert.Equal(t, "$limit", pipeline[3][0].Key)
	assert.Equal(t, 10, pipeline[3][0].Value)

	lookupCatalog := pipeline[4][0].Value.(bson.D)
	assert.Equal(t, "catalog_item", lookupCatalog[0].Value)
	lookupSalesman := pipeline[6][0].Value.(bson.D)
	assert.Equal(t, "user", lookupSalesman[0].Value)

	project := pipeline[8][0].Value.(bson.D)
	assert.Equal(t, "salesman.password", project[0].Key)
}

func salesmanRouter(uid string, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("uid", uid)
		c.Set("user_role", models.RoleSalesman)
	})
	router.PUT("/orders/:order_code", handler)
	return router
}

func orderDoc(orderCode string, status string, salesmanId string, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "order_code", Value: orderCode},
		{Key: "status", Value: status},
		{Key: "salesman_id", Value: salesmanId},
		{Key: "customer_name", Value: "Priya Sharma"},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(createdAt)},
	}
}

func TestSalesmanEditRejectedAfterWindow(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("edit window expired", func(mt *mtest.T) {
		saved := orderCollection
		orderCollection = mt.Coll
		defer func() { orderCollection = saved }()

		created := time.Now().Add(-49 * time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "jewelry.order", mtest.FirstBatch,
			orderDoc("ORD-20260829-00001", models.StatusConfirmed, "salesman-1", created)))

		router := salesmanRouter("salesman-1", UpdateOrderBySalesman())
		body, _ := json.Marshal(gin.H{"details": "engrave initials on the inside"})
		req := httptest.NewRequest(http.MethodPut, "/orders/ORD-20260829-00001", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(mt, http.StatusForbidden, recorder.Code)
		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(mt, true, resp["editWindowExpired"])
	})
	mt.Run("order already processed", func(mt *mtest.T) {
		saved := orderCollection
		orderCollection = mt.Coll
		defer func() { orderCollection = saved }()

		created := time.Now().Add(-1 * time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "jewelry.order", mtest.FirstBatch,
			orderDoc("ORD-20260831-00002", models.StatusCadCompleted, "salesman-1", created)))

		router := salesmanRouter("salesman-1", UpdateOrderBySalesman())
		body, _ := json.Marshal(gin.H{"details": "change ring size"})
		req := httptest.NewRequest(http.MethodPut, "/orders/ORD-20260831-00002", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(mt, http.StatusForbidden, recorder.Code)
		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(mt, true, resp["orderProcessed"])
	})
}

func TestBulkUpdateFiresOneNotificationPerChangedOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("fan-out counts changed orders only", func(mt *mtest.T) {
		saved := orderCollection
		orderCollection = mt.Coll
		defer func() { orderCollection = saved }()

		var attempts []string
		savedDispatch := dispatchStatusNotification
		dispatchStatusNotification = func(ctx context.Context, order models.Order, oldStatus string, newStatus string) error {
			attempts = append(attempts, order.Order_code)
			// a failing notification store must not abort the batch
			return errors.New("notification store unavailable")
		}
		defer func() { dispatchStatusNotification = savedDispatch }()

		now := time.Now()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "jewelry.order", mtest.FirstBatch,
				orderDoc("ORD-20260831-00001", models.StatusConfirmed, "salesman-1", now),
				orderDoc("ORD-20260831-00002", models.StatusProductionFloor, "salesman-2", now),
				orderDoc("ORD-20260831-00003", models.StatusFinished, "salesman-1", now)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}, bson.E{Key: "nModified", Value: 2}),
		)

		router := gin.New()
		router.POST("/orders/bulkupdate", BulkUpdateOrders())
		body, _ := json.Marshal(gin.H{
			"ids":    []string{"ORD-20260831-00001", "ORD-20260831-00002", "ORD-20260831-00003"},
			"status": models.StatusFinished,
		})
		req := httptest.NewRequest(http.MethodPost, "/orders/bulkupdate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(mt, http.StatusOK, recorder.Code)
		assert.Equal(mt, []string{"ORD-20260831-00001", "ORD-20260831-00002"}, attempts)
	})
}
