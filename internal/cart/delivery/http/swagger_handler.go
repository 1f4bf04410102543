package http

// GetCart godoc
// @Summary Get the session cart
// @Description Returns the cart lines with the derived totals
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,data=object{items=array,isDrawerOpen=bool,totalQuantity=int,totalPrice=string,itemCount=int}}
// @Router /api/cart [get]
func (h *CartHandler) GetCartDoc() {}

// AddItem godoc
// @Summary Add one unit of a product
// @Description A product already in the cart has its quantity incremented
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Param request body object{id=string,title=string,price=number,image=string} true "Product"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cart/items [post]
func (h *CartHandler) AddItemDoc() {}

// UpdateQuantity godoc
// @Summary Set the quantity of a cart line
// @Description Quantities below 1 are stored as 1. Unknown ids leave the cart unchanged.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Param id path string true "Product ID"
// @Param request body object{quantity=int} true "Quantity"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantityDoc() {}

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItemDoc() {}

// IsInCart godoc
// @Summary Check whether a product is in the cart
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object{id=string,isInCart=bool}}
// @Router /api/cart/items/{id} [get]
func (h *CartHandler) IsInCartDoc() {}

// ClearCart godoc
// @Summary Empty the cart
// @Description The drawer state is left as is
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /api/cart [delete]
func (h *CartHandler) ClearCartDoc() {}

// OpenDrawer godoc
// @Summary Open the cart drawer
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/drawer/open [post]
func (h *CartHandler) OpenDrawerDoc() {}

// CloseDrawer godoc
// @Summary Close the cart drawer
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/drawer/close [post]
func (h *CartHandler) CloseDrawerDoc() {}
