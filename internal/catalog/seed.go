package catalog

import "github.com/t-ecosystem/market_api/internal/models"

// SeedModules is the T-Ecosystem catalog snapshot shipped with the service.
// In production this would come from a managed configuration store; the
// shape (ids, dependency links, feature keys) is part of the contract.
func SeedModules() []models.Module {
	return []models.Module{
		// --- UPH CORE (main hub) ---
		{
			ID:          "uph-core",
			Name:        "UPH Core",
			Description: "Unified Project Hub - central management platform",
			LongDescription: "UPH (Unified Project Hub) is a comprehensive project management " +
				"platform for engineering and manufacturing companies, and the central " +
				"application of the T-Ecosystem family. Manage projects, tasks, RAID logs " +
				"and engineering changes (ECR/ECO) from a single hub.",
			Benefits: []string{
				"Central management: every project is run from one place.",
				"EVM metrics: professional performance tracking with Earned Value Management.",
				"Engineering change management: controlled revisions through ECR and ECO flows.",
				"Team collaboration: real-time coordination and file sharing.",
			},
			Icon:      "LayoutDashboard",
			Category:  models.CategoryOperations,
			Type:      models.ModuleTypeApp,
			Price:     0,
			Currency:  "USD",
			Features:  []string{"uph_core", "kanban_board", "raid_log", "evm_metrics", "ecr_eco_system"},
			Version:   "3.0.0",
			IsPopular: true,
			URL:       "http://localhost:3000",
		},

		// --- FLUX (UPH add-on package) ---
		{
			ID:          "flux-core",
			Name:        "Flux (IoT & Energy)",
			Description: "Essential IoT device monitoring and connectivity module.",
			LongDescription: "Flux provides real-time visibility into your physical " +
				"infrastructure. By connecting to IoT sensors and energy meters, Flux lets " +
				"you monitor power consumption, device status and environmental conditions " +
				"across all your facilities.",
			Benefits: []string{
				"Live monitoring: millisecond-latency updates from all connected IoT devices.",
				"Energy optimization: identify power drains and optimize usage patterns.",
				"Alert system: instant notifications for critical faults or threshold breaches.",
				"Device management: remote firmware updates and configuration.",
			},
			Icon:     "Activity",
			Category: models.CategoryEngineering,
			Type:     models.ModuleTypeAddon,
			ParentID: "uph-core",
			Price:    0,
			Currency: "USD",
			Features: []string{"flux_core"},
			Version:  "2.1.0",
			URL:      "http://localhost:3001",
		},
		{
			ID:          "flux-analytics",
			Name:        "Flux Analytics Pro",
			Description: "Advanced charts, historical data, and energy predictions for Flux",
			LongDescription: "Unlock the full power of your data with Flux Analytics Pro. " +
				"This package adds predictive maintenance models and long-term trend " +
				"analysis to your Flux installation.",
			Benefits: []string{
				"Predictive maintenance: models forecast equipment failure before it happens.",
				"Historical retrospective: unlimited data retention for audit and analysis.",
				"Custom reports: drag-and-drop report builder for engineering teams.",
			},
			Icon:      "LineChart",
			Category:  models.CategoryEngineering,
			Type:      models.ModuleTypeAddon,
			ParentID:  "flux-core",
			Price:     49,
			Currency:  "USD",
			Features:  []string{"flux_charts"},
			Version:   "1.0.0",
			IsPopular: true,
		},

		// --- FORGE (UPH add-on package) ---
		{
			ID:          "forge-core",
			Name:        "Forge (Manufacturing)",
			Description: "Manufacturing job tracking and technician assignment module.",
			LongDescription: "Forge digitizes your manufacturing floor. Track production " +
				"jobs, assign technicians and monitor inventory consumption in real time. " +
				"Forge eliminates paper travelers and provides total visibility into your " +
				"production pipeline.",
			Benefits: []string{
				"Digital travelers: replace paper job sheets with interactive tablets.",
				"Technician portal: a dedicated interface for floor workers to log time and status.",
				"Inventory sync: automatically deduct materials from stock as jobs complete.",
				"Quality control: integrated checkpoints and sign-off workflows.",
			},
			Icon:     "Hammer",
			Category: models.CategoryOperations,
			Type:     models.ModuleTypeAddon,
			ParentID: "uph-core",
			Price:    0,
			Currency: "USD",
			Features: []string{"forge_core"},
			Version:  "1.5.0",
			URL:      "http://localhost:3002",
		},
		{
			ID:          "forge-3d",
			Name:        "Forge 3D Vision",
			Description: "Interactive 3D schematics for assembly technicians in Forge",
			LongDescription: "Empower your technicians with interactive 3D models. Forge 3D " +
				"Vision integrates CAD files directly into the job instruction panel, " +
				"allowing workers to rotate, zoom and explode assembly views.",
			Benefits: []string{
				"Interactive CAD: view complex assemblies from any angle.",
				"Exploded views: visual step-by-step assembly guides.",
				"Reduced errors: clearer instructions lead to fewer assembly defects.",
			},
			Icon:     "Box",
			Category: models.CategoryOperations,
			Type:     models.ModuleTypeAddon,
			ParentID: "forge-core",
			Price:    79,
			Currency: "USD",
			IsNew:    true,
			Features: []string{"forge_3d"},
			Version:  "0.9.beta",
		},

		// --- EXTERNAL ECOSYSTEM APPS ---
		{
			ID:          "envi-core",
			Name:        "ENV-I OS",
			Description: "Professional stock and inventory management platform",
			LongDescription: "ENV-I is a comprehensive inventory management system for " +
				"engineering and manufacturing companies. Zone and shelf based location " +
				"tracking, serial number management and smart stock alerts give you full " +
				"control over your warehouse.",
			Benefits: []string{
				"Complete stock tracking: manage products, equipment and consumables on one platform.",
				"Warehouse map: visual zone and shelf based location tracking.",
				"Smart alerts: low stock and maintenance due notifications.",
				"Reporting: stock value, movement history and consumption analysis.",
			},
			Icon:     "Building",
			Category: models.CategoryOperations,
			Type:     models.ModuleTypeApp,
			Price:    199,
			Currency: "USD",
			Features: []string{"envi_access", "warehouse_map", "smart_alerts", "equipment_tracking"},
			Version:  "3.0.0",
			URL:      "http://localhost:3003",
		},
		{
			ID:          "envi-evm",
			Name:        "EVM Master",
			Description: "Earned Value Management advanced metrics for ENV-I",
			LongDescription: "Master your project budget with standard Earned Value " +
				"Management (EVM) capability. Track CPI, SPI, and forecast project " +
				"completion costs with mathematical precision.",
			Benefits: []string{
				"Standard metrics: CPI, SPI, CV, SV calculated automatically.",
				"Cost forecasting: predict EAC (Estimate at Completion) from current performance.",
				"Variance analysis: drill down into cost overruns by work package.",
			},
			Icon:     "BarChart",
			Category: models.CategoryFinance,
			Type:     models.ModuleTypeAddon,
			ParentID: "envi-core",
			Price:    59,
			Currency: "USD",
			Features: []string{"envi_evm_pro"},
			Version:  "1.1.0",
		},

		// --- WEAVE (supply chain) ---
		{
			ID:          "weave-core",
			Name:        "Weave Nexus",
			Description: "System interconnect design platform",
			LongDescription: "Weave is a system-level interconnect design platform, used to " +
				"design how physical products (cameras, monitors, sensors) wire together. " +
				"The ENV-I integration pulls products straight onto the canvas.",
			Benefits: []string{
				"Visual design: build system schematics with a drag-and-drop interface.",
				"Automatic BOM: extract a bill of materials the moment a design is done.",
				"75+ connectors: a rich industry-standard connector library.",
				"Technical drawings: professional wiring diagrams exported as PDF.",
			},
			Icon:     "Network",
			Category: models.CategoryProductivity,
			Type:     models.ModuleTypeApp,
			Price:    29,
			Currency: "USD",
			Features: []string{"weave_access", "visual_cable_design", "auto_bom", "connector_library"},
			Version:  "2.0.1",
			URL:      "http://localhost:3004",
		},
		{
			ID:          "weave-risk",
			Name:        "Supplier Risk AI",
			Description: "Real-time geopolitical risk analysis for Weave nodes",
			LongDescription: "Protect your supply chain from global disruption. Weave Risk " +
				"AI monitors news, weather and geopolitical events to alert you of " +
				"potential impacts to your suppliers before they happen.",
			Benefits: []string{
				"24/7 monitoring: automated scanning of global news sources.",
				"Impact analysis: calculates which products are at risk from specific events.",
				"Alternative sourcing: suggests backup suppliers when risks are detected.",
			},
			Icon:     "ShieldAlert",
			Category: models.CategoryProductivity,
			Type:     models.ModuleTypeAddon,
			ParentID: "weave-core",
			Price:    89,
			Currency: "USD",
			Features: []string{"weave_risk_ai"},
			Version:  "1.0.0",
		},

		// --- RENDERCI (visualization) ---
		{
			ID:          "renderci-core",
			Name:        "Renderci Studio",
			Description: "AI assisted technical visualization platform",
			LongDescription: "Renderci Studio is an AI assisted engine that produces high " +
				"quality visual renders from technical drawings and 3D models, with scene " +
				"analysis and prompt based refinement.",
			Benefits: []string{
				"AI assisted rendering: prompt driven refinement and photorealistic output.",
				"3D model support: reads GLB, STEP and DXF formats directly.",
				"Style presets: ready-made studio and outdoor lighting setups.",
				"Rapid prototyping: presentation-ready visuals in minutes.",
			},
			Icon:     "MonitorPlay",
			Category: models.CategoryOperations,
			Type:     models.ModuleTypeApp,
			Price:    49,
			Currency: "USD",
			Features: []string{"renderci_access", "ai_render_engine", "3d_viewer", "style_presets"},
			Version:  "1.2.0",
			URL:      "http://localhost:3005",
		},
		{
			ID:          "renderci-kluster",
			Name:        "Kluster GPU Access",
			Description: "Unlock access to high-performance remote GPU clusters",
			LongDescription: "Need more power? Kluster GPU Access connects your local " +
				"Renderci Studio to our high-performance cloud GPU farm. Render scenes in " +
				"minutes instead of hours.",
			Benefits: []string{
				"On-demand power: access thousands of CUDA cores instantly.",
				"Cost efficient: pay only for the compute time you use.",
				"Secure transfer: end-to-end encrypted asset upload and download.",
			},
			Icon:     "Cpu",
			Category: models.CategoryEngineering,
			Type:     models.ModuleTypeAddon,
			ParentID: "renderci-core",
			Price:    149,
			Currency: "USD",
			Features: []string{"renderci_gpu"},
			Version:  "1.0.0",
		},

		// --- T-SA (audit) ---
		{
			ID:          "tsa-core",
			Name:        "T-SA Audit",
			Description: "Technical specification analysis platform",
			LongDescription: "T-SA (Technical Specification Analyzer) analyzes tender " +
				"specifications and technical documents. It reads PDF specifications, " +
				"extracts requirements and automatically matches them against ENV-I stock.",
			Benefits: []string{
				"Automatic analysis: digest a 500-page technical specification in seconds.",
				"Product matching: automatically find in-stock products that meet requirements.",
				"Datasheet comparison: compare product characteristics side by side.",
				"Compliance report: a ready compliance matrix for the tender process.",
			},
			Icon:     "ClipboardCheck",
			Category: models.CategoryProductivity,
			Type:     models.ModuleTypeApp,
			Price:    19,
			Currency: "USD",
			Features: []string{"tsa_access", "spec_analysis_ai", "datasheet_compare", "compliance_matrix"},
			Version:  "1.0.5",
			URL:      "http://localhost:3006",
		},

		// --- INTEGRATIONS (cross-app) ---
		{
			ID:          "smart-link",
			Name:        "Smart Link: Flux x Forge",
			Description: "Auto-create maintenance jobs in Forge when Flux detects faults",
			LongDescription: "Smart Link creates an intelligent bridge between Flux sensors " +
				"and Forge maintenance tickets. When a sensor detects a fault, a job is " +
				"automatically created in Forge with the correct error codes and machine " +
				"location pre-filled.",
			Benefits: []string{
				"Automated dispatch: eliminate manual reporting of machine failures.",
				"Faster response: technicians are notified the second a fault occurs.",
				"Data continuity: pass sensor logs directly to the repair technician.",
			},
			Icon:     "Link",
			Category: models.CategoryIntegration,
			Type:     models.ModuleTypeIntegration,
			Price:    199,
			Currency: "USD",
			Features: []string{"flux_forge_sync"},
			Version:  "1.0.0",
		},
		{
			ID:          "eco-sync",
			Name:        "EcoSync: ENV-I x Weave",
			Description: "Sync construction material requirements directly to supply chain map",
			LongDescription: "Connect construction demand with supply chain reality. EcoSync " +
				"pushes material requirements from ENV-I project schedules directly into " +
				"Weave maps, ensuring materials actually arrive when they are needed on site.",
			Benefits: []string{
				"Just-in-time delivery: align shipping schedules with construction milestones.",
				"Shortage alerts: warn project managers if supply chain delays will impact the build.",
				"Unified BOM: a single bill of materials across engineering and logistics.",
			},
			Icon:     "RefreshCw",
			Category: models.CategoryIntegration,
			Type:     models.ModuleTypeIntegration,
			Price:    129,
			Currency: "USD",
			Features: []string{"envi_weave_sync"},
			Version:  "1.0.0",
		},
	}
}

// SeedFeatureMap maps fine-grained feature keys to the module that must be
// installed for the feature to be usable. Keys absent from this map are
// treated as available to everyone: new features default to open until they
// are explicitly gated here.
func SeedFeatureMap() map[string]string {
	return map[string]string{
		// UPH core
		"uph_core": "uph-core",

		// Flux features (UPH add-ons)
		"flux_core":   "flux-core",
		"flux_charts": "flux-analytics",

		// Forge features (UPH add-ons)
		"forge_core": "forge-core",
		"forge_3d":   "forge-3d",

		// ENV-I features
		"envi_access":  "envi-core",
		"envi_evm_pro": "envi-evm",

		// Weave features
		"weave_access":  "weave-core",
		"weave_risk_ai": "weave-risk",

		// Renderci features
		"renderci_access": "renderci-core",
		"renderci_gpu":    "renderci-kluster",

		// T-SA features
		"tsa_access": "tsa-core",

		// Integrations
		"flux_forge_sync": "smart-link",
		"envi_weave_sync": "eco-sync",
	}
}
