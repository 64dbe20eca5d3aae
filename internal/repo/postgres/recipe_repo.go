package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRecipeNotFound = errors.New("recipe not found")

type RecipeRepo struct {
	pool *pgxpool.Pool
}

type RecipeRecord struct {
	ID           int64
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	Category     string
	ImageURL     string
	Published    bool
	CreatedAt    time.Time
}

func NewRecipeRepo(pool *pgxpool.Pool) *RecipeRepo {
	return &RecipeRepo{pool: pool}
}

func (r *RecipeRepo) Create(ctx context.Context, recipe RecipeRecord) (RecipeRecord, error) {
	if r.pool == nil {
		return RecipeRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(recipe.Title) == "" {
		return RecipeRecord{}, fmt.Errorf("recipe title is required")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO recipes (title, description, ingredients, instructions, category, image_url, published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at
`, recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions,
		recipe.Category, recipe.ImageURL, recipe.Published).
		Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return RecipeRecord{}, fmt.Errorf("create recipe: %w", err)
	}

	return recipe, nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id int64) (RecipeRecord, error) {
	if r.pool == nil {
		return RecipeRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return RecipeRecord{}, fmt.Errorf("invalid recipe id")
	}

	var recipe RecipeRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, title, description, ingredients, instructions, category, image_url, published, created_at
FROM recipes
WHERE id = $1
`, id).Scan(&recipe.ID, &recipe.Title, &recipe.Description, &recipe.Ingredients,
		&recipe.Instructions, &recipe.Category, &recipe.ImageURL, &recipe.Published, &recipe.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RecipeRecord{}, ErrRecipeNotFound
		}
		return RecipeRecord{}, fmt.Errorf("get recipe by id: %w", err)
	}

	return recipe, nil
}

func (r *RecipeRepo) List(ctx context.Context, publishedOnly bool) ([]RecipeRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT id, title, description, ingredients, instructions, category, image_url, published, created_at
FROM recipes
`
	if publishedOnly {
		query += "WHERE published\n"
	}
	query += "ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []RecipeRecord
	for rows.Next() {
		var recipe RecipeRecord
		if err := rows.Scan(&recipe.ID, &recipe.Title, &recipe.Description, &recipe.Ingredients,
			&recipe.Instructions, &recipe.Category, &recipe.ImageURL, &recipe.Published, &recipe.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}

	return recipes, nil
}

func (r *RecipeRepo) Update(ctx context.Context, recipe RecipeRecord) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if recipe.ID <= 0 {
		return fmt.Errorf("invalid recipe id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE recipes
SET title = $2, description = $3, ingredients = $4, instructions = $5,
    category = $6, image_url = $7, published = $8, updated_at = NOW()
WHERE id = $1
`, recipe.ID, recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions,
		recipe.Category, recipe.ImageURL, recipe.Published)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (r *RecipeRepo) Delete(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid recipe id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}
