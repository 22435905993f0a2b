package profile_test

import (
	"fmt"

	"github.com/slotforge/slotforge/pkg/profile"
	"github.com/slotforge/slotforge/pkg/units"
)

func ExampleCatalog_Get() {
	c := profile.NewCatalog()
	s, _ := c.Get(profile.DefaultProfile)

	fmt.Println(s.Name)
	fmt.Println(s.Width, s.Height, s.Unit)
	// Output:
	// 80/20 1010 (1" x 1")
	// 1 1 in
}

func ExampleSpec_Resolve() {
	// Resolve an inch-native profile into a millimeter working space.
	c := profile.NewCatalog()
	s, _ := c.Get(profile.DefaultProfile)

	conv, _ := units.NewConverter(units.Millimeter)
	r, _ := s.Resolve(conv)

	fmt.Println(r.Width)
	fmt.Println(r.SlotCenterFromFace)
	// Output:
	// 25.4
	// 6.35
}
