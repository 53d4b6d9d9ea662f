package optionsfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/singlezone/building"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders opts as a single HCL building block that ParseHCL reads back
// to the same options. An empty construction has no HCL form, since a block
// without layers reads back as the baseline construction.
func Encode(name string, opts building.Options) ([]byte, error) {
	if len(opts.Construction) == 0 {
		return nil, fmt.Errorf("error encoding building %q: %w", name, building.ErrEmptyConstruction)
	}
	obj, err := scalarsOf(opts).toCty()
	if err != nil {
		return nil, err
	}

	f := hclwrite.NewEmptyFile()
	block := f.Body().AppendNewBlock("building", []string{name})
	body := block.Body()
	for _, attr := range attributeOrder {
		body.SetAttributeValue(attr, obj.GetAttr(attr))
	}

	for _, sel := range opts.Construction {
		body.AppendNewline()
		layer := body.AppendNewBlock("layer", []string{sel.Kind().String()})
		layer.Body().SetAttributeValue("thickness", cty.NumberFloatVal(sel.Thickness()))
	}

	return hclwrite.Format(f.Bytes()), nil
}
