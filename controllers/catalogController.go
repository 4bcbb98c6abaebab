package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go-jewelry-order-management/database"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var catalogItemCollection *mongo.Collection = database.OpenCollection(database.Client, "catalog_item")
var categoryCollection *mongo.Collection = database.OpenCollection(database.Client, "category")
var fontCollection *mongo.Collection = database.OpenCollection(database.Client, "font")
var specialItemCollection *mongo.Collection = database.OpenCollection(database.Client, "special_item")

func GetCatalogItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "20"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 20
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		filter := bson.M{}
		if categoryId := c.Query("category_id"); categoryId != "" {
			filter["category_id"] = categoryId
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(startIndex)).
			SetLimit(int64(recordPerPage))

		result, err := catalogItemCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing catalog items"})
			return
		}
		var allItems []models.CatalogItem
		if err := result.All(ctx, &allItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing catalog items"})
			return
		}
		c.JSON(http.StatusOK, allItems)
	}
}

func GetCatalogItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		catalogItemId := c.Param("catalog_item_id")
		var item models.CatalogItem
		err := catalogItemCollection.FindOne(ctx, bson.M{"catalog_item_id": catalogItemId}).Decode(&item)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the catalog item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateCatalogItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var item models.CatalogItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&item); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		if item.Category_id != nil {
			var category models.Category
			if err := categoryCollection.FindOne(ctx, bson.M{"category_id": item.Category_id}).Decode(&category); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category was not found"})
				return
			}
		}

		item.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.Updated_at = item.Created_at
		item.ID = primitive.NewObjectID()
		item.Catalog_item_id = item.ID.Hex()

		if _, err := catalogItemCollection.InsertOne(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog item was not created"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func UpdateCatalogItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		catalogItemId := c.Param("catalog_item_id")
		var item models.CatalogItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if item.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: item.Name})
		}
		if item.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: item.Description})
		}
		if item.Images != nil {
			updateObj = append(updateObj, bson.E{Key: "images", Value: item.Images})
		}
		if item.Category_id != nil {
			var category models.Category
			if err := categoryCollection.FindOne(ctx, bson.M{"category_id": item.Category_id}).Decode(&category); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category was not found"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "category_id", Value: item.Category_id})
		}
		if item.Default_karat != nil {
			updateObj = append(updateObj, bson.E{Key: "default_karat", Value: item.Default_karat})
		}
		if item.Price_min != nil {
			updateObj = append(updateObj, bson.E{Key: "price_min", Value: item.Price_min})
		}
		if item.Price_max != nil {
			updateObj = append(updateObj, bson.E{Key: "price_max", Value: item.Price_max})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := catalogItemCollection.UpdateOne(
			ctx,
			bson.M{"catalog_item_id": catalogItemId},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog item update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteCatalogItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := catalogItemCollection.DeleteOne(ctx, bson.M{"catalog_item_id": c.Param("catalog_item_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog item delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "catalog item deleted successfully"})
	}
}

func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := categoryCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing categories"})
			return
		}
		var allCategories []models.Category
		if err := result.All(ctx, &allCategories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing categories"})
			return
		}
		c.JSON(http.StatusOK, allCategories)
	}
}

func CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var category models.Category
		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&category); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		category.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		category.Updated_at = category.Created_at
		category.ID = primitive.NewObjectID()
		category.Category_id = category.ID.Hex()

		if _, err := categoryCollection.InsertOne(ctx, category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "category was not created"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var category models.Category
		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if category.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: category.Name})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := categoryCollection.UpdateOne(
			ctx,
			bson.M{"category_id": c.Param("category_id")},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "category update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := categoryCollection.DeleteOne(ctx, bson.M{"category_id": c.Param("category_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "category delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
	}
}

func GetFonts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := fontCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing fonts"})
			return
		}
		var allFonts []models.Font
		if err := result.All(ctx, &allFonts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing fonts"})
			return
		}
		c.JSON(http.StatusOK, allFonts)
	}
}

func CreateFont() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var font models.Font
		if err := c.BindJSON(&font); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&font); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		font.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		font.Updated_at = font.Created_at
		font.ID = primitive.NewObjectID()
		font.Font_id = font.ID.Hex()

		if _, err := fontCollection.InsertOne(ctx, font); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "font was not created"})
			return
		}
		c.JSON(http.StatusOK, font)
	}
}

func UpdateFont() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var font models.Font
		if err := c.BindJSON(&font); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if font.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: font.Name})
		}
		if font.Preview_image != nil {
			updateObj = append(updateObj, bson.E{Key: "preview_image", Value: font.Preview_image})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := fontCollection.UpdateOne(
			ctx,
			bson.M{"font_id": c.Param("font_id")},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "font update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "font not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteFont() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := fontCollection.DeleteOne(ctx, bson.M{"font_id": c.Param("font_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "font delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "font not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "font deleted successfully"})
	}
}

func GetSpecialItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if available := c.Query("available"); available != "" {
			filter["available"] = available == "true"
		}

		result, err := specialItemCollection.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing special items"})
			return
		}
		var allItems []models.SpecialItem
		if err := result.All(ctx, &allItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing special items"})
			return
		}
		c.JSON(http.StatusOK, allItems)
	}
}

func CreateSpecialItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var item models.SpecialItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&item); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		item.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.Updated_at = item.Created_at
		item.ID = primitive.NewObjectID()
		item.Special_item_id = item.ID.Hex()

		if _, err := specialItemCollection.InsertOne(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "special item was not created"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func UpdateSpecialItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var item models.SpecialItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if item.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: item.Name})
		}
		if item.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: item.Description})
		}
		if item.Images != nil {
			updateObj = append(updateObj, bson.E{Key: "images", Value: item.Images})
		}
		if item.Price != nil {
			updateObj = append(updateObj, bson.E{Key: "price", Value: item.Price})
		}
		if item.Available != nil {
			updateObj = append(updateObj, bson.E{Key: "available", Value: item.Available})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := specialItemCollection.UpdateOne(
			ctx,
			bson.M{"special_item_id": c.Param("special_item_id")},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "special item update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "special item not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteSpecialItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := specialItemCollection.DeleteOne(ctx, bson.M{"special_item_id": c.Param("special_item_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "special item delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "special item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "special item deleted successfully"})
	}
}
