package propertypath_test

import (
	"fmt"

	"fieldpath/propertypath"
)

func ExampleParse() {
	p, err := propertypath.Parse("weapons.Array.data[2].damage")
	if err != nil {
		panic(err)
	}

	for _, s := range p.Segments {
		fmt.Println(s.Kind, s.Name, s.Index)
	}

	fmt.Println(p)

	// Output:
	// Index weapons 2
	// Member damage 0
	// weapons[2].damage
}

func ExampleNormalize() {
	fmt.Println(propertypath.Normalize("squads.Array.data[0].members.Array.size"))

	// Output:
	// squads[0].members[#]
}
