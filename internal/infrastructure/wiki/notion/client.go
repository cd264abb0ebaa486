// Package notion publishes the entity registry to a Notion database.
package notion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/infrastructure/config"
)

// Property names in the remote entity database.
const (
	propName            = "Name"
	propType            = "Type"
	propAliases         = "Aliases"
	propMisspellings    = "Common Misspellings"
	propDescription     = "Description"
	propFirstAppearance = "First Appearance"
)

// Client implements the WikiDB interface against a Notion database.
type Client struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewClient creates a new Notion entity database client.
func NewClient(cfg config.NotionConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Notion API key is required")
	}
	if cfg.EntityDatabaseID == "" {
		return nil, errors.New("Notion entity database ID is required")
	}

	return &Client{
		client:     notionapi.NewClient(notionapi.Token(cfg.APIKey)),
		databaseID: notionapi.DatabaseID(cfg.EntityDatabaseID),
	}, nil
}

// EnsureSchema verifies the entity database is reachable with the
// configured credentials.
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.client.Database.Get(ctx, c.databaseID); err != nil {
		return fmt.Errorf("reaching Notion database: %w", err)
	}
	return nil
}

// ListEntities fetches every entity page from the database, following
// pagination cursors until exhausted.
func (c *Client) ListEntities(ctx context.Context) ([]*entities.Entity, error) {
	var result []*entities.Entity

	req := &notionapi.DatabaseQueryRequest{PageSize: 100}
	for {
		resp, err := c.client.Database.Query(ctx, c.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("querying Notion database: %w", err)
		}

		for i := range resp.Results {
			entity, err := entityFromPage(&resp.Results[i])
			if err != nil {
				return nil, fmt.Errorf("reading page %s: %w", resp.Results[i].ID, err)
			}
			result = append(result, entity)
		}

		if !resp.HasMore {
			return result, nil
		}
		req.StartCursor = notionapi.Cursor(resp.NextCursor)
	}
}

// CreateEntity creates a page for the entity and returns its page ID.
func (c *Client) CreateEntity(ctx context.Context, entity *entities.Entity) (string, error) {
	page, err := c.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: entityProperties(entity),
	})
	if err != nil {
		return "", fmt.Errorf("creating Notion page for %q: %w", entity.Name, err)
	}
	return string(page.ID), nil
}

// UpdateEntity overwrites the remote page with the entity's current state.
func (c *Client) UpdateEntity(ctx context.Context, entity *entities.Entity) error {
	if entity.ExternalID == "" {
		return fmt.Errorf("entity %q has no page ID", entity.Name)
	}

	_, err := c.client.Page.Update(ctx, notionapi.PageID(entity.ExternalID), &notionapi.PageUpdateRequest{
		Properties: entityProperties(entity),
	})
	if err != nil {
		return fmt.Errorf("updating Notion page for %q: %w", entity.Name, err)
	}
	return nil
}

// entityProperties maps an entity onto the database's property schema.
func entityProperties(entity *entities.Entity) notionapi.Properties {
	props := notionapi.Properties{
		propName: notionapi.TitleProperty{
			Title: richText(entity.Name),
		},
		propType: notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(entity.Type)},
		},
		propAliases: notionapi.RichTextProperty{
			RichText: richText(entity.Aliases),
		},
		propMisspellings: notionapi.RichTextProperty{
			RichText: richText(entity.Misspellings),
		},
		propDescription: notionapi.RichTextProperty{
			RichText: richText(entity.Description),
		},
	}

	date := notionapi.DateProperty{}
	if !entity.FirstAppearance.IsZero() {
		start := notionapi.Date(entity.FirstAppearance)
		date.Date = &notionapi.DateObject{Start: &start}
	}
	props[propFirstAppearance] = date

	return props
}

// entityFromPage reads an entity back out of a page's properties.
func entityFromPage(page *notionapi.Page) (*entities.Entity, error) {
	name := titleText(page.Properties[propName])
	if name == "" {
		return nil, errors.New("page has no name")
	}

	entity := &entities.Entity{
		Name:         name,
		Aliases:      plainText(page.Properties[propAliases]),
		Misspellings: plainText(page.Properties[propMisspellings]),
		Description:  plainText(page.Properties[propDescription]),
		ExternalID:   string(page.ID),
	}

	if sel, ok := page.Properties[propType].(*notionapi.SelectProperty); ok && sel.Select.Name != "" {
		parsed, err := entities.ParseEntityType(sel.Select.Name)
		if err != nil {
			return nil, err
		}
		entity.Type = parsed
	}

	if dp, ok := page.Properties[propFirstAppearance].(*notionapi.DateProperty); ok && dp.Date != nil && dp.Date.Start != nil {
		entity.FirstAppearance = entities.DateOnly(time.Time(*dp.Date.Start))
	}

	return entity, nil
}

func richText(content string) []notionapi.RichText {
	if content == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: content}},
	}
}

func titleText(prop notionapi.Property) string {
	title, ok := prop.(*notionapi.TitleProperty)
	if !ok {
		return ""
	}
	return joinRichText(title.Title)
}

func plainText(prop notionapi.Property) string {
	rt, ok := prop.(*notionapi.RichTextProperty)
	if !ok {
		return ""
	}
	return joinRichText(rt.RichText)
}

func joinRichText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Text != nil {
			b.WriteString(p.Text.Content)
		} else {
			b.WriteString(p.PlainText)
		}
	}
	return strings.TrimSpace(b.String())
}
