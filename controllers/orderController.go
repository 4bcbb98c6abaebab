package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"go-jewelry-order-management/database"
	"go-jewelry-order-management/helpers"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

// Indirection so tests can count dispatch attempts.
var dispatchStatusNotification = helpers.DispatchStatusNotification

// Admin update path: only these fields may change, anything else in the
// body is ignored.
type OrderStatusUpdateRequest struct {
	Status                 *string    `json:"status"`
	Priority               *string    `json:"priority"`
	Expected_delivery_date *time.Time `json:"expected_delivery_date"`
	Cancel_reason          *string    `json:"cancel_reason"`
}

type BulkOrderUpdateRequest struct {
	Ids           []string `json:"ids"`
	Status        string   `json:"status"`
	Cancel_reason *string  `json:"cancelReason"`
}

// ValidateStatusChange applies the shared preconditions of the single and
// bulk update paths. Returns a user-facing message when the change must be
// rejected with a 400.
func ValidateStatusChange(status string, cancelReason *string) string {
	if !models.IsValidStatus(status) {
		return fmt.Sprintf("invalid status %q", status)
	}
	if status == models.StatusCancelled && (cancelReason == nil || *cancelReason == "") {
		return "a cancellation reason is required when cancelling an order"
	}
	return ""
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var order models.Order
		if err := c.BindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&order)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if order.Catalog_item_id != nil {
			var catalogItem models.CatalogItem
			err := catalogItemCollection.FindOne(ctx, bson.M{"catalog_item_id": order.Catalog_item_id}).Decode(&catalogItem)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "catalog item was not found"})
				return
			}
		}

		orderCode, err := helpers.NextOrderCode(ctx)
		if err != nil {
			log.Println("order code generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}

		order.ID = primitive.NewObjectID()
		order.Order_code = orderCode
		order.Salesman_id = c.GetString("uid")
		order.Status = models.StatusConfirmed
		order.Cancel_reason = nil
		if !models.IsValidPriority(order.Priority) {
			order.Priority = models.PriorityMedium
		}
		order.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		order.Updated_at = order.Created_at

		_, insertErr := orderCollection.InsertOne(ctx, order)
		if insertErr != nil {
			log.Println("order insert failed:", insertErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		filter := bson.M{}
		if c.GetString("user_role") == models.RoleSalesman {
			filter["salesman_id"] = c.GetString("uid")
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if priority := c.Query("priority"); priority != "" {
			filter["priority"] = priority
		}

		totalCount, err := orderCollection.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(startIndex)).
			SetLimit(int64(recordPerPage))

		result, err := orderCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		var allOrders []models.Order
		if err := result.All(ctx, &allOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_count": totalCount,
			"orders":      allOrders,
		})
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderCode := c.Param("order_code")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_code": orderCode}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		if c.GetString("user_role") == models.RoleSalesman && order.Salesman_id != c.GetString("uid") {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only view your own orders"})
			return
		}

		populated, err := orderWithRelations(ctx, orderCode)
		if err != nil {
			c.JSON(http.StatusOK, order)
			return
		}
		c.JSON(http.StatusOK, populated)
	}
}

// orderListPipeline joins catalog item and salesman onto matching orders,
// newest first. Credentials and tokens are projected out of the salesman.
func orderListPipeline(match bson.D, skip int, limit int) mongo.Pipeline {
	matchStage := bson.D{{Key: "$match", Value: match}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}}
	skipStage := bson.D{{Key: "$skip", Value: skip}}
	limitStage := bson.D{{Key: "$limit", Value: limit}}
	lookupCatalogStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "catalog_item"},
		{Key: "localField", Value: "catalog_item_id"},
		{Key: "foreignField", Value: "catalog_item_id"},
		{Key: "as", Value: "catalog_item"},
	}}}
	unwindCatalogStage := bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$catalog_item"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
	lookupSalesmanStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "user"},
		{Key: "localField", Value: "salesman_id"},
		{Key: "foreignField", Value: "user_id"},
		{Key: "as", Value: "salesman"},
	}}}
	unwindSalesmanStage := bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$salesman"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "salesman.password", Value: 0},
		{Key: "salesman.token", Value: 0},
		{Key: "salesman.refresh_token", Value: 0},
		{Key: "salesman.otp_code", Value: 0},
		{Key: "salesman.otp_expires_at", Value: 0},
	}}}

	return mongo.Pipeline{
		matchStage,
		sortStage,
		skipStage,
		limitStage,
		lookupCatalogStage,
		unwindCatalogStage,
		lookupSalesmanStage,
		unwindSalesmanStage,
		projectStage,
	}
}

// orderWithRelations returns a single order with its relations joined in.
func orderWithRelations(ctx context.Context, orderCode string) (bson.M, error) {
	pipeline := orderListPipeline(bson.D{{Key: "order_code", Value: orderCode}}, 0, 1)

	cursor, err := orderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return results[0], nil
}

// GetOrdersWithRelations is the populated variant of GetOrders for the admin
// and shop owner dashboards: each page of orders carries its catalog item
// and salesman.
func GetOrdersWithRelations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		match := bson.D{}
		if status := c.Query("status"); status != "" {
			match = append(match, bson.E{Key: "status", Value: status})
		}
		if priority := c.Query("priority"); priority != "" {
			match = append(match, bson.E{Key: "priority", Value: priority})
		}

		cursor, err := orderCollection.Aggregate(ctx, orderListPipeline(match, startIndex, recordPerPage))
		if err != nil {
			log.Println("order list aggregation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		defer cursor.Close(ctx)

		var ordersWithRelations []bson.M
		if err := cursor.All(ctx, &ordersWithRelations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, ordersWithRelations)
	}
}

// UpdateOrder is the admin path: status, priority, expected delivery date
// and cancel reason only. Fires a notification to the owning salesman when
// the status actually changed.
func UpdateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderCode := c.Param("order_code")
		var req OrderStatusUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Status != nil {
			if msg := ValidateStatusChange(*req.Status, req.Cancel_reason); msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}
		}
		if req.Priority != nil && !models.IsValidPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid priority %q", *req.Priority)})
			return
		}

		var existing models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_code": orderCode}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Println("order lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}

		var updateObj primitive.D
		if req.Status != nil {
			updateObj = append(updateObj, bson.E{Key: "status", Value: *req.Status})
		}
		if req.Priority != nil {
			updateObj = append(updateObj, bson.E{Key: "priority", Value: *req.Priority})
		}
		if req.Expected_delivery_date != nil {
			updateObj = append(updateObj, bson.E{Key: "expected_delivery_date", Value: *req.Expected_delivery_date})
		}
		if req.Cancel_reason != nil {
			updateObj = append(updateObj, bson.E{Key: "cancel_reason", Value: *req.Cancel_reason})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		filter := bson.M{"order_code": orderCode}
		result, err := orderCollection.UpdateOne(
			ctx,
			filter,
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			log.Println("order update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		if req.Status != nil && *req.Status != existing.Status {
			notified := existing
			notified.Cancel_reason = req.Cancel_reason
			if err := dispatchStatusNotification(ctx, notified, existing.Status, *req.Status); err != nil {
				log.Println("notification dispatch failed for order", orderCode, ":", err)
			}
			if *req.Status == models.StatusCancelled {
				go func(code string) {
					if err := helpers.SendOpsAlert(fmt.Sprintf("Order %s was cancelled", code)); err != nil {
						log.Println("ops alert failed:", err)
					}
				}(orderCode)
			}
		}

		populated, err := orderWithRelations(ctx, orderCode)
		if err != nil {
			log.Println("order populate failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		c.JSON(http.StatusOK, populated)
	}
}

// UpdateOrderBySalesman lets the owning salesman amend order details. Both
// gates are recomputed on every attempt: the 48 hour window since creation
// and the order still being in an editable status. The client-side countdown
// is advisory only.
func UpdateOrderBySalesman() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderCode := c.Param("order_code")
		var req models.Order
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_code": orderCode}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Println("order lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}

		if existing.Salesman_id != c.GetString("uid") {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own orders"})
			return
		}
		if !models.WithinEditWindow(existing.Created_at, time.Now()) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":             "the edit window for this order has expired",
				"editWindowExpired": true,
			})
			return
		}
		if !models.IsEditableStatus(existing.Status) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":          "this order has already been processed and can no longer be edited",
				"orderProcessed": true,
			})
			return
		}

		if req.Catalog_item_id != nil {
			var catalogItem models.CatalogItem
			if err := catalogItemCollection.FindOne(ctx, bson.M{"catalog_item_id": req.Catalog_item_id}).Decode(&catalogItem); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "catalog item was not found"})
				return
			}
		}

		var updateObj primitive.D
		if req.Product_name != nil {
			updateObj = append(updateObj, bson.E{Key: "product_name", Value: req.Product_name})
		}
		if req.Customer_name != nil {
			updateObj = append(updateObj, bson.E{Key: "customer_name", Value: req.Customer_name})
		}
		if req.Details != nil {
			updateObj = append(updateObj, bson.E{Key: "details", Value: req.Details})
		}
		if req.Voice_note != nil {
			updateObj = append(updateObj, bson.E{Key: "voice_note", Value: req.Voice_note})
		}
		if req.Images != nil {
			updateObj = append(updateObj, bson.E{Key: "images", Value: req.Images})
		}
		if req.Karat != nil {
			updateObj = append(updateObj, bson.E{Key: "karat", Value: req.Karat})
		}
		if req.Weight != nil {
			updateObj = append(updateObj, bson.E{Key: "weight", Value: req.Weight})
		}
		if req.Colour != nil {
			updateObj = append(updateObj, bson.E{Key: "colour", Value: req.Colour})
		}
		if req.Size != nil {
			updateObj = append(updateObj, bson.E{Key: "size", Value: req.Size})
		}
		if req.With_stones != nil {
			updateObj = append(updateObj, bson.E{Key: "with_stones", Value: req.With_stones})
		}
		if req.With_engraving != nil {
			updateObj = append(updateObj, bson.E{Key: "with_engraving", Value: req.With_engraving})
		}
		if req.Catalog_item_id != nil {
			updateObj = append(updateObj, bson.E{Key: "catalog_item_id", Value: req.Catalog_item_id})
		}
		if req.Expected_delivery_date != nil {
			updateObj = append(updateObj, bson.E{Key: "expected_delivery_date", Value: req.Expected_delivery_date})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		_, err = orderCollection.UpdateOne(
			ctx,
			bson.M{"order_code": orderCode},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			log.Println("order update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}

		populated, err := orderWithRelations(ctx, orderCode)
		if err != nil {
			log.Println("order populate failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		c.JSON(http.StatusOK, populated)
	}
}

// BulkUpdateOrders sets one status on many orders at once. The current
// documents are loaded first so each prior status is known, then a single
// batched update runs, then one notification per actually-changed order.
// The batch and the fan-out are deliberately not transactional; a failed
// notification is logged and skipped.
func BulkUpdateOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req BulkOrderUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req.Ids) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must not be empty"})
			return
		}
		if msg := ValidateStatusChange(req.Status, req.Cancel_reason); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		filter := bson.M{"order_code": bson.M{"$in": req.Ids}}
		cursor, err := orderCollection.Find(ctx, filter)
		if err != nil {
			log.Println("bulk order lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk update failed"})
			return
		}
		var currentOrders []models.Order
		if err := cursor.All(ctx, &currentOrders); err != nil {
			log.Println("bulk order decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk update failed"})
			return
		}

		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj := primitive.D{
			bson.E{Key: "status", Value: req.Status},
			bson.E{Key: "updated_at", Value: updated_at},
		}
		if req.Status == models.StatusCancelled {
			updateObj = append(updateObj, bson.E{Key: "cancel_reason", Value: *req.Cancel_reason})
		}

		result, err := orderCollection.UpdateMany(
			ctx,
			filter,
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			log.Println("bulk order update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk update failed"})
			return
		}

		for _, order := range currentOrders {
			if order.Status == req.Status {
				continue
			}
			notified := order
			notified.Cancel_reason = req.Cancel_reason
			if err := dispatchStatusNotification(ctx, notified, order.Status, req.Status); err != nil {
				log.Println("notification dispatch failed for order", order.Order_code, ":", err)
			}
		}

		if req.Status == models.StatusCancelled && result.ModifiedCount > 0 {
			go func(count int64) {
				if err := helpers.SendOpsAlert(fmt.Sprintf("%d orders were bulk-cancelled", count)); err != nil {
					log.Println("ops alert failed:", err)
				}
			}(result.ModifiedCount)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "orders updated successfully",
			"matched_count":  result.MatchedCount,
			"modified_count": result.ModifiedCount,
		})
	}
}

func DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderCode := c.Param("order_code")
		result, err := orderCollection.DeleteOne(ctx, bson.M{"order_code": orderCode})
		if err != nil {
			log.Println("order delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully"})
	}
}
