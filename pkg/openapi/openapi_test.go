package openapi

import (
	"context"
	"testing"

	"github.com/goliatone/go-formarray/pkg/schema"
)

const petsSpec = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        '201':
          description: created
components:
  schemas:
    Pet:
      type: object
      properties:
        tags:
          type: array
          maxItems: 4
          items:
            $ref: '#/components/schemas/Tag'
    Tag:
      type: object
      title: Tag
      properties:
        name:
          type: string
          default: untitled
`

func TestLoad_OperationsResolveComponentRefs(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceInline("pets.yaml"), []byte(petsSpec))
	loaded, err := Load(context.Background(), doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	op, err := loaded.Operation("createPet")
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if op.Method != "POST" || op.Path != "/pets" {
		t.Fatalf("unexpected operation: %+v", op)
	}

	root := loaded.Root()
	pet, err := root.Deref(op.Schema)
	if err != nil {
		t.Fatalf("deref request schema: %v", err)
	}
	tags := pet.Properties["tags"]
	if tags.MaxItems == nil || *tags.MaxItems != 4 {
		t.Fatalf("expected maxItems 4, got %v", tags.MaxItems)
	}
	tag, err := root.Resolve(tags, "items")
	if err != nil {
		t.Fatalf("resolve items: %v", err)
	}
	if tag.Title != "Tag" {
		t.Fatalf("expected Tag, got %q", tag.Title)
	}
}

func TestLoad_ComponentSchema(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceInline("pets.yaml"), []byte(petsSpec))
	loaded, err := Load(context.Background(), doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := loaded.ComponentSchema("Missing"); err == nil {
		t.Fatalf("expected missing component error")
	}
	tag, err := loaded.ComponentSchema("Tag")
	if err != nil {
		t.Fatalf("component: %v", err)
	}
	if tag.Properties["name"].Default != "untitled" {
		t.Fatalf("unexpected default %#v", tag.Properties["name"].Default)
	}
}

func TestDocument_SchemaPointer(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceInline("pets.yaml"), []byte(petsSpec))
	loaded, err := Load(context.Background(), doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	op, err := loaded.Operation("createPet")
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if want := "#/paths/~1pets/post/requestBody/content/application~1json/schema"; op.Pointer != want {
		t.Fatalf("expected pointer %q, got %q", want, op.Pointer)
	}

	pointer, err := loaded.SchemaPointer("createPet", "#/properties/tags")
	if err != nil {
		t.Fatalf("schema pointer: %v", err)
	}
	if pointer != "#/components/schemas/Pet/properties/tags" {
		t.Fatalf("unexpected pointer %q", pointer)
	}
	tags, err := loaded.Root().Lookup(pointer)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tags.MaxItems == nil || *tags.MaxItems != 4 {
		t.Fatalf("expected maxItems 4, got %v", tags.MaxItems)
	}

	if base, err := loaded.SchemaPointer("createPet", ""); err != nil || base != "#/components/schemas/Pet" {
		t.Fatalf("expected body schema pointer, got %q (%v)", base, err)
	}
	if _, err := loaded.SchemaPointer("deletePet", "/properties/tags"); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}

func TestLoad_RejectsInvalidDocument(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceInline("bad.yaml"), []byte("openapi: 3.0.3\ninfo: {}\npaths: {}\n"))
	if _, err := Load(context.Background(), doc); err == nil {
		t.Fatalf("expected validation error for missing info fields")
	}
}
