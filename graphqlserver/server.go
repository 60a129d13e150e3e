package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"conputodo.GO/graphql"
	gqlmodels "conputodo.GO/graphql/models"
	"conputodo.GO/graphql/registry"
	"conputodo.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver adapts schema arguments and delegates to the resolvers package.
type QueryResolver struct {
	db *gorm.DB
}

// ProductsArgs matches the products query arguments (defaults in schema: pageSize=20, currentPage=1).
type ProductsArgs struct {
	PageSize    int32
	CurrentPage int32
	Featured    *bool
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductList, error) {
	return resolvers.New(r.db).Products(ctx, args.PageSize, args.CurrentPage, args.Featured)
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID   *string
	Slug *string
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	return resolvers.New(r.db).Product(ctx, args.ID, args.Slug)
}

// SearchArgs matches the search query arguments.
type SearchArgs struct {
	Query       string
	PageSize    int32
	CurrentPage int32
}

func (r *QueryResolver) Search(ctx context.Context, args SearchArgs) (*gqlmodels.ProductList, error) {
	return resolvers.New(r.db).Search(ctx, args.Query, args.PageSize, args.CurrentPage)
}

func (r *QueryResolver) StoreSettings(ctx context.Context) (*gqlmodels.StoreSettings, error) {
	return resolvers.New(r.db).StoreSettings(ctx)
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
