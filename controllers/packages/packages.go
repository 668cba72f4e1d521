package packages

import (
	"context"
	"errors"
	"fmt"
	"io"

	"travel-portal/controllers/server"
	"travel-portal/httpServices/gateway"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/services/tables"
	"travel-portal/types/travelpackage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// CatalogGateway is the read side of the package service.
type CatalogGateway interface {
	ListPackages(ctx context.Context, token string) ([]travelpackage.Package, error)
	GetPackage(ctx context.Context, token, id string) (*travelpackage.Package, error)
	SearchPackages(ctx context.Context, token string, q travelpackage.SearchQuery) ([]travelpackage.Package, error)
}

// AgentGateway is what travel agents use to manage their packages.
type AgentGateway interface {
	CatalogGateway
	CreatePackage(ctx context.Context, token string, pkg travelpackage.Package) (*travelpackage.Package, error)
	UpdatePackage(ctx context.Context, token, id string, pkg travelpackage.Package) (*travelpackage.Package, error)
	DeletePackage(ctx context.Context, token, id string) error
	UpdatePackageStatus(ctx context.Context, token, id string, active bool) (*travelpackage.Package, error)
	UploadPackageImage(ctx context.Context, token, id, filename string, image io.Reader) (*travelpackage.Package, error)
}

// WishlistStore keeps each user's saved package ids.
type WishlistStore interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, packageID string) error
	Remove(ctx context.Context, userID, packageID string) error
}

const maxImageSize = 5 * 1024 * 1024

type PackageController struct {
	gw       AgentGateway
	wishlist WishlistStore
}

func NewPackageController(gw AgentGateway, wishlist WishlistStore) *PackageController {
	return &PackageController{gw: gw, wishlist: wishlist}
}

// catalog lists packages, serving the fallback catalog when the package
// service is unreachable.
func (pc *PackageController) catalog(ctx context.Context, token string) ([]travelpackage.Package, bool, error) {
	list, err := pc.gw.ListPackages(ctx, token)
	if err != nil {
		if errors.Is(err, gateway.ErrUnavailable) {
			logger.Warning("Package service unavailable, serving fallback catalog: " + err.Error())
			return travelpackage.FallbackCatalog(), true, nil
		}
		return nil, false, err
	}
	return list, false, nil
}

// List is the public catalog with search, filter and pagination.
func (pc *PackageController) List(c *fiber.Ctx) error {
	list, fallback, err := pc.catalog(c.UserContext(), "")
	if err != nil {
		return server.Fail(c, err, "Failed to list packages")
	}

	result := tables.Packages.Apply(list, c.Queries())
	return server.Respond(c, fiber.StatusOK, "Packages retrieved successfully", fiber.Map{
		"packages": result,
		"fallback": fallback,
	})
}

func (pc *PackageController) Show(c *fiber.Ctx) error {
	pkg, err := pc.gw.GetPackage(c.UserContext(), "", c.Params("id"))
	if err != nil {
		if errors.Is(err, gateway.ErrUnavailable) {
			for _, p := range travelpackage.FallbackCatalog() {
				if p.ID == c.Params("id") {
					return server.Respond(c, fiber.StatusOK, "Package retrieved successfully", p)
				}
			}
		}
		return server.Fail(c, err, "Failed to load package")
	}
	return server.Respond(c, fiber.StatusOK, "Package retrieved successfully", pkg)
}

func (pc *PackageController) Search(c *fiber.Ctx) error {
	var q travelpackage.SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return server.BadRequest(c, err)
	}
	if err := q.Validate(); err != nil {
		return server.Invalid(c, map[string]string{"price": err.Error()})
	}

	list, err := pc.gw.SearchPackages(c.UserContext(), "", q)
	if err != nil {
		if !errors.Is(err, gateway.ErrUnavailable) {
			return server.Fail(c, err, "Failed to search packages")
		}
		list = []travelpackage.Package{}
		for _, p := range travelpackage.FallbackCatalog() {
			if q.Matches(p) {
				list = append(list, p)
			}
		}
	}
	return server.Respond(c, fiber.StatusOK, "Packages retrieved successfully", list)
}

/*=============================================================================
| Agent package management
===============================================================================*/

// AgentList is the agent's package table.
func (pc *PackageController) AgentList(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	list, err := pc.gw.ListPackages(c.UserContext(), p.Token)
	if err != nil {
		return server.Fail(c, err, "Failed to list packages")
	}
	return server.Respond(c, fiber.StatusOK, "Packages retrieved successfully", tables.Packages.Apply(list, c.Queries()))
}

func (pc *PackageController) Create(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var req travelpackage.UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid package")
	}

	created, err := pc.gw.CreatePackage(c.UserContext(), p.Token, req.ToPackage("", p.UserID))
	if err != nil {
		return server.Fail(c, err, "Failed to create package")
	}
	logger.Success(fmt.Sprintf("Package %s created by %s", created.ID, p.UserID))
	return server.Respond(c, fiber.StatusCreated, "Package created successfully", created)
}

func (pc *PackageController) Update(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	id := c.Params("id")

	var req travelpackage.UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid package")
	}

	updated, err := pc.gw.UpdatePackage(c.UserContext(), p.Token, id, req.ToPackage(id, p.UserID))
	if err != nil {
		return server.Fail(c, err, "Failed to update package")
	}
	return server.Respond(c, fiber.StatusOK, "Package updated successfully", updated)
}

func (pc *PackageController) Delete(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	if err := pc.gw.DeletePackage(c.UserContext(), p.Token, c.Params("id")); err != nil {
		return server.Fail(c, err, "Failed to delete package")
	}
	return server.Respond(c, fiber.StatusOK, "Package deleted successfully", nil)
}

func (pc *PackageController) UpdateStatus(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var req travelpackage.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	if req.Active == nil {
		return server.Invalid(c, map[string]string{"active": "Active is required."})
	}

	updated, err := pc.gw.UpdatePackageStatus(c.UserContext(), p.Token, c.Params("id"), *req.Active)
	if err != nil {
		return server.Fail(c, err, "Failed to update package status")
	}
	return server.Respond(c, fiber.StatusOK, "Package status updated successfully", updated)
}

// UploadImage forwards a multipart "image" file to the package service.
func (pc *PackageController) UploadImage(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	file, err := c.FormFile("image")
	if err != nil {
		return server.Invalid(c, map[string]string{"image": "Image is required."})
	}
	if file.Size > maxImageSize {
		return server.Invalid(c, map[string]string{"image": "Image must be 5MB or smaller."})
	}

	src, err := file.Open()
	if err != nil {
		return server.Fail(c, err, "Failed to read uploaded image")
	}
	defer src.Close()

	updated, err := pc.gw.UploadPackageImage(c.UserContext(), p.Token, c.Params("id"), file.Filename, src)
	if err != nil {
		return server.Fail(c, err, "Failed to upload package image")
	}
	return server.Respond(c, fiber.StatusOK, "Image uploaded successfully", updated)
}

/*=============================================================================
| Wishlist
===============================================================================*/

func (pc *PackageController) Wishlist(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	ids, err := pc.wishlist.List(c.UserContext(), p.UserID)
	if err != nil {
		return server.Fail(c, err, "Failed to load wishlist")
	}
	return server.Respond(c, fiber.StatusOK, "Wishlist retrieved successfully", ids)
}

func (pc *PackageController) AddToWishlist(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	packageID := utils.CopyString(c.Params("packageId"))

	if _, err := pc.gw.GetPackage(c.UserContext(), p.Token, packageID); err != nil {
		return server.Fail(c, err, "Failed to load package")
	}
	if err := pc.wishlist.Add(c.UserContext(), p.UserID, packageID); err != nil {
		return server.Fail(c, err, "Failed to update wishlist")
	}
	return pc.Wishlist(c)
}

func (pc *PackageController) RemoveFromWishlist(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	if err := pc.wishlist.Remove(c.UserContext(), p.UserID, utils.CopyString(c.Params("packageId"))); err != nil {
		return server.Fail(c, err, "Failed to update wishlist")
	}
	return pc.Wishlist(c)
}
