package press

// DefaultMinistries is the ordered list of organization names recognized in
// page text. Order is priority order: when a page mentions several, the
// first match in this list wins.
var DefaultMinistries = []string{
	"Prime Minister's Office",
	"Ministry of Defence",
	"Ministry of Home Affairs",
	"Ministry of External Affairs",
	"Ministry of Finance",
	"Ministry of Law and Justice",
	"Ministry of Environment, Forest and Climate Change",
	"Ministry of Health and Family Welfare",
	"Ministry of Education",
	"Ministry of Agriculture & Farmers Welfare",
	"Ministry of Railways",
	"Ministry of Road Transport and Highways",
	"Ministry of Power",
	"Ministry of Petroleum and Natural Gas",
	"Ministry of Commerce and Industry",
	"Ministry of Electronics & IT",
	"Ministry of Science & Technology",
	"Ministry of Labour & Employment",
	"Ministry of Rural Development",
	"Ministry of Housing and Urban Affairs",
	"Ministry of Women and Child Development",
	"Ministry of Social Justice and Empowerment",
	"Ministry of Tribal Affairs",
	"Ministry of Consumer Affairs, Food and Public Distribution",
	"Ministry of Parliamentary Affairs",
	"Ministry of Civil Aviation",
	"Ministry of Coal",
	"Ministry of Heavy Industries",
	"Ministry of Panchayati Raj",
	"Ministry of Jal Shakti",
	"Ministry of Information & Broadcasting",
	"Ministry of Ports, Shipping and Waterways",
	"Ministry of Tourism",
	"Ministry of Culture",
	"Ministry of Youth Affairs & Sports",
	"Ministry of Steel",
	"Ministry of Mines",
	"Ministry of New and Renewable Energy",
	"Ministry of Fisheries, Animal Husbandry and Dairying",
	"Ministry of Cooperation",
	"NITI Aayog",
	"Cabinet Secretariat",
	"President's Secretariat",
	"Election Commission of India",
}
