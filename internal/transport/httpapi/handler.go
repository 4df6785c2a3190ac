package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/murkotick/catalog-service/internal/app/catalog/queries/get_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/queries/list_entities"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/add_translation"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/create_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/delete_entity"
)

// Catalog serves the /catalog/{kind} routes.
type Catalog struct {
	list      *list_entities.Handler
	get       *get_entity.Handler
	create    *create_entity.Interactor
	translate *add_translation.Interactor
	remove    *delete_entity.Interactor
	errs      errorWriter
}

func (h *Catalog) listEntities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var keys []string
	page, ok := intParam(firstOf(q.Get("page"), q.Get("pageNumber")))
	if !ok {
		keys = append(keys, KeyInvalidPage)
	}
	size, ok := intParam(q.Get("pageSize"))
	if !ok {
		keys = append(keys, KeyInvalidPageSize)
	}
	minPrice, okMin := priceParam(q.Get("minPrice"))
	maxPrice, okMax := priceParam(q.Get("maxPrice"))
	if !okMin || !okMax {
		keys = append(keys, KeyInvalidPrice)
	}
	if len(keys) > 0 {
		writeRejected(w, keys...)
		return
	}

	result, err := h.list.Execute(r.Context(), list_entities.Query{
		Kind:         kindFrom(r.Context()),
		LanguageCode: LanguageFrom(r.Context()),
		SearchTerm:   q.Get("searchTerm"),
		CategoryID:   firstOf(q.Get("categoryId"), q.Get("parentId")),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		SortBy:       q.Get("sortBy"),
		Page:         page,
		PageSize:     size,
	})
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeData(w, result)
}

func (h *Catalog) getEntity(w http.ResponseWriter, r *http.Request) {
	result, err := h.get.Execute(r.Context(), get_entity.Query{
		Kind:         kindFrom(r.Context()),
		ID:           chi.URLParam(r, "id"),
		LanguageCode: LanguageFrom(r.Context()),
	})
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeData(w, result)
}

func (h *Catalog) createEntity(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r.Context())

	var body createBody
	if !decodeBody(w, r, &body) {
		return
	}
	body.normalize()
	if err := body.validate(kind); err != nil {
		writeRejected(w, validationKeys(err)...)
		return
	}

	id, err := h.create.Execute(r.Context(), create_entity.Request{
		Kind:         kind,
		Name:         body.Name,
		LanguageCode: body.LanguageCode,
		Description:  body.Description,
		ParentID:     body.parentID(kind),
		Price:        body.price(),
	})
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeData(w, id)
}

func (h *Catalog) addTranslation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body translationBody
	if !decodeBody(w, r, &body) {
		return
	}
	body.normalize()
	if err := body.validate(id); err != nil {
		writeRejected(w, validationKeys(err)...)
		return
	}

	err := h.translate.Execute(r.Context(), add_translation.Request{
		Kind:         kindFrom(r.Context()),
		EntityID:     id,
		LanguageCode: body.LanguageCode,
		Name:         body.Name,
		Description:  body.Description,
	})
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeData(w, struct{}{})
}

func (h *Catalog) deleteEntity(w http.ResponseWriter, r *http.Request) {
	err := h.remove.Execute(r.Context(), delete_entity.Request{
		Kind: kindFrom(r.Context()),
		ID:   chi.URLParam(r, "id"),
	})
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeData(w, struct{}{})
}

// decodeBody reads a JSON body into dst and reports invalidBody itself
// when the body is not usable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeRejected(w, KeyInvalidBody)
		return false
	}
	return true
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
